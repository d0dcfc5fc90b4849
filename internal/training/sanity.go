package training

import (
	"github.com/LegendarySumit/TruthShield/internal/ensemble"
	"github.com/LegendarySumit/TruthShield/internal/feature"
	"github.com/LegendarySumit/TruthShield/internal/model"
	"github.com/LegendarySumit/TruthShield/internal/textnorm"
)

type sanityCase struct {
	Expected model.Label
	Category string
	Text     string
}

// SanityMiss records one battery case the freshly trained model got wrong.
type SanityMiss struct {
	Expected   model.Label
	Got        model.Label
	Category   string
	Confidence float64
	Text       string
}

// SanityReport is the outcome of the post-training probe battery.
type SanityReport struct {
	Correct int
	Total   int
	Misses  []SanityMiss
}

// sanityCases probes the trained model across claim categories, half
// sensational and half sober. Misses are informational: the battery judges
// style-detection breadth, not correctness of the run.
var sanityCases = []sanityCase{
	{model.LabelNonCredible, "Conspiracy", "BREAKING: Government caught putting mind control drugs in tap water!!! They don't want you to know! Share NOW!!!"},
	{model.LabelNonCredible, "Health misinfo", "Drinking bleach in small quantities CURES cancer! Doctors are HIDING this from you! Big Pharma is FURIOUS!"},
	{model.LabelNonCredible, "Clickbait", "You won't BELIEVE what scientists found in vaccines! Big Pharma is HIDING this! Watch before it gets DELETED!"},
	{model.LabelNonCredible, "Flat Earth", "PROOF that the Earth is flat! NASA has been faking space photos for decades! The truth is finally out!!!"},
	{model.LabelNonCredible, "Election fraud", "EXPOSED: Massive voter fraud scheme during the last election. Millions of fake ballots confirmed by inside source!"},
	{model.LabelNonCredible, "Financial scam", "Mom of 3 discovers loophole that makes $5,000 per day from her phone! Banks HATE this trick!"},
	{model.LabelNonCredible, "Urban legend", "CONFIRMED: Bigfoot was captured alive by the military! Multiple witnesses verified! Why isn't media covering this??"},
	{model.LabelNonCredible, "WhatsApp forward", "FORWARD THIS TO EVERYONE!! Starting tomorrow all messages monitored by government! Send to 10 people NOW!"},
	{model.LabelNonCredible, "Celebrity death", "RIP Keanu Reeves! Mysterious circumstances! The official story doesn't add up! SHARE before they delete this!"},
	{model.LabelNonCredible, "Science denial", "EXPOSED: Climate change is the biggest scientific fraud in history! Follow the MONEY! The evidence is UNDENIABLE!"},
	{model.LabelNonCredible, "Fake history", "HIDDEN TRUTH: The pyramids were built by aliens using antigravity technology! Your history books LIED to you!"},
	{model.LabelNonCredible, "Tech scare", "LEAKED: Your phone is recording ALL conversations even when turned off! Apple just ADMITTED it! Delete everything NOW!"},
	{model.LabelNonCredible, "Anti-vax", "Vaccines contain magnetic nanoparticles — try putting a magnet on your arm! mRNA permanently alters your DNA!!!"},
	{model.LabelNonCredible, "5G conspiracy", "WARNING: 5G towers are being activated to control your thoughts!! This is being CENSORED! Repost on every platform!"},
	{model.LabelNonCredible, "Food scare", "The bread you eat every day is DESTROYING your brain! Made from recycled plastic! A scientist was FIRED for revealing this!"},
	{model.LabelNonCredible, "Crypto scam", "Elon Musk just endorsed TruthCoin! Invest now before it goes to the MOON! A 19-year-old made $50,000 in 3 days!"},
	{model.LabelNonCredible, "NWO claim", "NEW WORLD ORDER: The UN just dissolved all national borders! Secret meeting of billionaires controlling population! NOT A DRILL!"},
	{model.LabelNonCredible, "Miracle cure", "This one weird trick reverses aging by 20 years! Doctors HATE it! Number 7 will SHOCK you!"},
	{model.LabelNonCredible, "General misinfo", "FACT THEY HIDE: The cure for cancer has existed for decades! Curing it isn't profitable! Wake up people!!!"},
	{model.LabelNonCredible, "Short fake", "BREAKING: All hospitals going on emergency lockdown! Share with EVERYONE before they censor this!!!"},

	{model.LabelCredible, "News economy", "The Federal Reserve raised interest rates by 0.25% on Wednesday, citing persistent inflation concerns. Economists largely supported the decision."},
	{model.LabelCredible, "News science", "NASA announced the successful launch of the Artemis III mission from Kennedy Space Center on Monday."},
	{model.LabelCredible, "News politics", "The Senate voted 67-33 to approve the Infrastructure Investment Act, which would allocate funding for bridge and road repairs."},
	{model.LabelCredible, "Health fact", "The CDC recommends that adults get at least 150 minutes of moderate-intensity exercise per week to reduce cardiovascular risk."},
	{model.LabelCredible, "Science study", "Researchers at MIT published a study in Nature showing that a new compound may slow the progression of Alzheimer's disease."},
	{model.LabelCredible, "General fact", "Water boils at 100 degrees Celsius at standard atmospheric pressure, a physical constant established through thermodynamic research."},
	{model.LabelCredible, "History", "The signing of the Treaty of Versailles occurred in 1919, resulting in significant geopolitical changes."},
	{model.LabelCredible, "Climate fact", "According to NOAA, global CO2 concentrations reached 421 parts per million in 2024, continuing an upward trend."},
	{model.LabelCredible, "Tech neutral", "According to a report by Gartner, global AI spending exceeded $150 billion in 2025."},
	{model.LabelCredible, "Education", "City officials in Austin approved a $45 million plan to renovate the downtown transit hub. Construction begins in March."},
	{model.LabelCredible, "Expert opinion", "Experts at Stanford noted that AI has potential to improve healthcare. While early results are encouraging, ethical challenges remain."},
	{model.LabelCredible, "Short fact", "The Earth revolves around the Sun, completing one orbit approximately every 365.25 days."},
	{model.LabelCredible, "DNA fact", "DNA carries the genetic instructions for all known living organisms. The Human Genome Project completed mapping in 2003."},
	{model.LabelCredible, "Medical trial", "The FDA approved a new monoclonal antibody treatment for rheumatoid arthritis after Phase III trials showed significant improvement."},
	{model.LabelCredible, "Environment", "Renewable energy sources accounted for 35% of electricity generation in Germany in 2025, according to NOAA."},
	{model.LabelCredible, "Archaeology", "Archaeological evidence from Göbekli Tepe confirms that advanced engineering was used in ancient construction, dating back approximately 10,000 years."},
	{model.LabelCredible, "Vaccine fact", "Vaccines work by training the immune system to recognize and fight pathogens. The CDC and WHO recommend vaccination based on clinical trial data."},
	{model.LabelCredible, "Space fact", "The International Space Station orbits the Earth approximately every 90 minutes at an altitude of about 400 kilometers."},
	{model.LabelCredible, "Nutrition", "A systematic review in JAMA examined 83 studies and found that moderate coffee consumption is not associated with increased cardiovascular risk."},
	{model.LabelCredible, "Short fact 2", "The human heart beats approximately 100,000 times per day. This rate varies based on age, fitness level, and activity."},
}

func runSanityBattery(v *feature.Vectorizer, e *ensemble.Ensemble) *SanityReport {
	report := &SanityReport{Total: len(sanityCases)}
	for _, tc := range sanityCases {
		vec := v.Transform(textnorm.Normalize(tc.Text))
		proba := e.PredictProba(vec)

		got := model.LabelCredible
		if proba[1] > proba[0] {
			got = model.LabelNonCredible
		}
		if got == tc.Expected {
			report.Correct++
			continue
		}
		report.Misses = append(report.Misses, SanityMiss{
			Expected:   tc.Expected,
			Got:        got,
			Category:   tc.Category,
			Confidence: proba[got],
			Text:       tc.Text,
		})
	}
	return report
}
