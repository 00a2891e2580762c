package auth

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Serializer converts an Identity to and from the opaque payload kept in
// the session store, decoupling the stored representation from whatever
// shape the provider hands back.
type Serializer interface {
	Serialize(identity *Identity) ([]byte, error)
	Deserialize(data []byte) (*Identity, error)
}

// JSONSerializer stores the whole Identity as JSON.
type JSONSerializer struct{}

func (JSONSerializer) Serialize(identity *Identity) ([]byte, error) {
	if identity == nil {
		return nil, errors.New("auth: identity is nil")
	}
	if identity.AccessToken == "" {
		return nil, errors.New("auth: identity has empty access token")
	}

	data, err := json.Marshal(identity)
	if err != nil {
		return nil, fmt.Errorf("auth: failed to serialize identity: %w", err)
	}
	return data, nil
}

func (JSONSerializer) Deserialize(data []byte) (*Identity, error) {
	if len(data) == 0 {
		return nil, errors.New("auth: empty identity payload")
	}

	var identity Identity
	if err := json.Unmarshal(data, &identity); err != nil {
		return nil, fmt.Errorf("auth: failed to deserialize identity: %w", err)
	}

	if identity.AccessToken == "" {
		return nil, errors.New("auth: stored identity has empty access token")
	}

	return &identity, nil
}
