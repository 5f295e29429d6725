package datastore

import (
	"encoding/json"
	"os"

	"github.com/aleister1102/webwatch/internal/common"
	"github.com/rs/zerolog"
)

// HashStore persists the mapping from target name to last-known content
// digest as a flat JSON object. The file is read once at the start of a run
// and rewritten wholesale at the end; there is no locking, so concurrent runs
// against the same store file are unsupported (last writer wins).
type HashStore struct {
	filePath    string
	logger      zerolog.Logger
	fileManager *common.FileManager
}

// NewHashStore creates a new HashStore backed by the given file path.
func NewHashStore(filePath string, logger zerolog.Logger) *HashStore {
	return &HashStore{
		filePath:    filePath,
		logger:      logger.With().Str("component", "HashStore").Logger(),
		fileManager: common.NewFileManager(logger),
	}
}

// FilePath returns the path of the backing store file
func (hs *HashStore) FilePath() string {
	return hs.filePath
}

// Load reads the persisted name-to-digest mapping. A missing file yields an
// empty mapping. An unparseable file is logged as a warning and also yields
// an empty mapping; loading never fails the run.
func (hs *HashStore) Load() map[string]string {
	hashes := make(map[string]string)

	data, err := os.ReadFile(hs.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			hs.logger.Debug().Str("path", hs.filePath).Msg("Hash store file not found, starting with empty history")
			return hashes
		}
		hs.logger.Warn().Err(err).Str("path", hs.filePath).Msg("Could not read hash store file, starting fresh")
		return hashes
	}

	if err := json.Unmarshal(data, &hashes); err != nil {
		hs.logger.Warn().Err(err).Str("path", hs.filePath).Msg("Could not decode hash store file, starting fresh")
		return make(map[string]string)
	}

	hs.logger.Debug().Str("path", hs.filePath).Int("entries", len(hashes)).Msg("Hash store loaded")
	return hashes
}

// Save overwrites the persisted mapping with the full current set of digests.
// A write failure is returned to the caller and is fatal for the run.
func (hs *HashStore) Save(hashes map[string]string) error {
	data, err := json.MarshalIndent(hashes, "", "    ")
	if err != nil {
		return common.WrapError(err, "failed to marshal hash store")
	}

	if err := hs.fileManager.WriteFile(hs.filePath, data, 0644); err != nil {
		return common.WrapError(err, "failed to save hash store")
	}

	hs.logger.Debug().Str("path", hs.filePath).Int("entries", len(hashes)).Msg("Hash store saved")
	return nil
}
