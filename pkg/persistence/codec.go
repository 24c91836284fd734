// Package persistence turns sessions into bytes and back for the stores that
// keep them outside the process (file, Redis), optionally sealed with AES-GCM.
package persistence

import (
	"encoding/json"
	"fmt"

	"github.com/arushahmd/compass-voice/pkg/domain"
)

// Codec serializes sessions for byte-oriented stores.
type Codec interface {
	Encode(sess *domain.Session) ([]byte, error)
	Decode(data []byte) (*domain.Session, error)
}

// JSONCodec stores sessions as JSON. Indent is used for human-readable files.
type JSONCodec struct {
	Indent bool
}

// Encode marshals the session.
func (c JSONCodec) Encode(sess *domain.Session) ([]byte, error) {
	var (
		data []byte
		err  error
	)
	if c.Indent {
		data, err = json.MarshalIndent(sess, "", "  ")
	} else {
		data, err = json.Marshal(sess)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to marshal session: %w", err)
	}
	return data, nil
}

// Decode unmarshals the session and repairs zero values.
func (c JSONCodec) Decode(data []byte) (*domain.Session, error) {
	var sess domain.Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}
	sess.Normalize()
	return &sess, nil
}
