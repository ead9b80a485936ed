package storage

import (
	"encoding/json"
	"errors"

	"github.com/jkendall327/VoynichBruteForce/internal/model"
)

const (
	CurrentSchemaVersion = 1
	CurrentCodecVersion  = 1
)

var ErrVersionMismatch = errors.New("record version mismatch")

func EncodeRunRecord(r model.RunRecord) ([]byte, error) {
	return json.Marshal(r)
}

func DecodeRunRecord(data []byte) (model.RunRecord, error) {
	var record model.RunRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return model.RunRecord{}, err
	}
	if err := checkVersion(record.VersionedRecord); err != nil {
		return model.RunRecord{}, err
	}
	if record.Winner != nil {
		if err := checkVersion(record.Winner.VersionedRecord); err != nil {
			return model.RunRecord{}, err
		}
	}
	return record, nil
}

func EncodeWinner(w model.WinnerRecord) ([]byte, error) {
	return json.MarshalIndent(w, "", "  ")
}

func checkVersion(v model.VersionedRecord) error {
	if v.SchemaVersion != CurrentSchemaVersion || v.CodecVersion != CurrentCodecVersion {
		return ErrVersionMismatch
	}
	return nil
}
