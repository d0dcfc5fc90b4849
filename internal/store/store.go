// Package store persists the trained (vectorizer, ensemble) artifact pair in
// a single bbolt file. The pair is saved atomically with a manifest that
// records the normalizer version and a checksum per blob; Load refuses a
// pair produced under a different normalizer version, since vocabulary and
// normalization are only valid together.
package store

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"go.etcd.io/bbolt"

	"github.com/LegendarySumit/TruthShield/internal/ensemble"
	"github.com/LegendarySumit/TruthShield/internal/feature"
)

var (
	bucketArtifacts = []byte("artifacts")
	bucketManifest  = []byte("manifest")

	keyVectorizer = []byte("vectorizer")
	keyEnsemble   = []byte("ensemble")
	keyManifest   = []byte("current")
)

// ErrNotFound is returned by Load when no artifact pair has been saved; the
// service treats this as degraded mode, not a startup failure.
var ErrNotFound = fmt.Errorf("store: no trained artifacts found")

// Manifest describes a saved artifact pair.
type Manifest struct {
	NormalizerVersion string    `json:"normalizer_version"`
	CreatedAt         time.Time `json:"created_at"`
	FeatureCount      int       `json:"feature_count"`
	VectorizerSHA256  string    `json:"vectorizer_sha256"`
	EnsembleSHA256    string    `json:"ensemble_sha256"`
}

// Store is a bbolt-backed artifact database.
type Store struct {
	db *bbolt.DB
}

// Open opens or creates the artifact database at path.
func Open(path string) (*Store, error) {
	db, err := bbolt.Open(path, 0600, &bbolt.Options{Timeout: 5 * time.Second})
	if err != nil {
		return nil, fmt.Errorf("store: open %s: %w", path, err)
	}

	err = db.Update(func(tx *bbolt.Tx) error {
		if _, err := tx.CreateBucketIfNotExists(bucketArtifacts); err != nil {
			return err
		}
		_, err := tx.CreateBucketIfNotExists(bucketManifest)
		return err
	})
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("store: init buckets: %w", err)
	}

	return &Store{db: db}, nil
}

// Close releases the underlying database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Save writes the fitted pair and its manifest in one transaction,
// replacing any previous pair.
func (s *Store) Save(v *feature.Vectorizer, e *ensemble.Ensemble, normVersion string) error {
	if !v.Fitted() {
		return fmt.Errorf("store: refusing to save unfitted vectorizer")
	}

	vecBlob, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("store: encode vectorizer: %w", err)
	}
	ensBlob, err := json.Marshal(e)
	if err != nil {
		return fmt.Errorf("store: encode ensemble: %w", err)
	}

	manifest := Manifest{
		NormalizerVersion: normVersion,
		CreatedAt:         time.Now().UTC(),
		FeatureCount:      v.NumFeatures(),
		VectorizerSHA256:  sha256Hex(vecBlob),
		EnsembleSHA256:    sha256Hex(ensBlob),
	}
	manBlob, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("store: encode manifest: %w", err)
	}

	return s.db.Update(func(tx *bbolt.Tx) error {
		b := tx.Bucket(bucketArtifacts)
		if err := b.Put(keyVectorizer, vecBlob); err != nil {
			return err
		}
		if err := b.Put(keyEnsemble, ensBlob); err != nil {
			return err
		}
		return tx.Bucket(bucketManifest).Put(keyManifest, manBlob)
	})
}

// Load reads the saved pair, verifying checksums and that it was produced
// under the given normalizer version.
func (s *Store) Load(normVersion string) (*feature.Vectorizer, *ensemble.Ensemble, *Manifest, error) {
	var vecBlob, ensBlob, manBlob []byte

	err := s.db.View(func(tx *bbolt.Tx) error {
		manBlob = clone(tx.Bucket(bucketManifest).Get(keyManifest))
		b := tx.Bucket(bucketArtifacts)
		vecBlob = clone(b.Get(keyVectorizer))
		ensBlob = clone(b.Get(keyEnsemble))
		return nil
	})
	if err != nil {
		return nil, nil, nil, fmt.Errorf("store: read: %w", err)
	}
	if manBlob == nil || vecBlob == nil || ensBlob == nil {
		return nil, nil, nil, ErrNotFound
	}

	var manifest Manifest
	if err := json.Unmarshal(manBlob, &manifest); err != nil {
		return nil, nil, nil, fmt.Errorf("store: decode manifest: %w", err)
	}
	if manifest.NormalizerVersion != normVersion {
		return nil, nil, nil, fmt.Errorf(
			"store: artifacts were trained with normalizer %q, runtime is %q; retrain required",
			manifest.NormalizerVersion, normVersion)
	}
	if got := sha256Hex(vecBlob); got != manifest.VectorizerSHA256 {
		return nil, nil, nil, fmt.Errorf("store: vectorizer checksum mismatch: got %s want %s", got, manifest.VectorizerSHA256)
	}
	if got := sha256Hex(ensBlob); got != manifest.EnsembleSHA256 {
		return nil, nil, nil, fmt.Errorf("store: ensemble checksum mismatch: got %s want %s", got, manifest.EnsembleSHA256)
	}

	v := &feature.Vectorizer{}
	if err := json.Unmarshal(vecBlob, v); err != nil {
		return nil, nil, nil, fmt.Errorf("store: decode vectorizer: %w", err)
	}
	e := &ensemble.Ensemble{}
	if err := json.Unmarshal(ensBlob, e); err != nil {
		return nil, nil, nil, fmt.Errorf("store: decode ensemble: %w", err)
	}

	return v, e, &manifest, nil
}

func sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

func clone(b []byte) []byte {
	if b == nil {
		return nil
	}
	out := make([]byte, len(b))
	copy(out, b)
	return out
}
