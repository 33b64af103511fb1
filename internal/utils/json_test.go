package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type exactKeysDoc struct {
	StateID string `json:"stateID"`
	Hidden  string `json:"-"`
	Plain   string
	Opt     string `json:"opt,omitempty"`
	private string
}

func TestCheckExactKeys(t *testing.T) {
	tests := []struct {
		name    string
		data    string
		wantErr bool
	}{
		{name: "exact keys", data: `{"stateID":"s1","Plain":"p","opt":"o"}`},
		{name: "unknown keys are ignored", data: `{"stateID":"s1","patch":[]}`},
		{name: "empty object", data: `{}`},
		{name: "not an object", data: `[1,2]`},
		{name: "malformed", data: `{"stateID":`},
		{name: "ignored field name", data: `{"hidden":"x"}`},
		{name: "unexported field name", data: `{"private":"x"}`},
		{name: "upper case key", data: `{"STATEID":"s1"}`, wantErr: true},
		{name: "case duplicate overrides exact key", data: `{"stateID":"s1","stateid":"evil"}`, wantErr: true},
		{name: "untagged field case", data: `{"plain":"p"}`, wantErr: true},
		{name: "omitempty field case", data: `{"OPT":"o"}`, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := CheckExactKeys([]byte(tt.data), exactKeysDoc{})
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrKeyCase)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestCheckExactKeys_PointerAndNonStruct(t *testing.T) {
	assert.ErrorIs(t, CheckExactKeys([]byte(`{"STATEID":"s"}`), &exactKeysDoc{}), ErrKeyCase)
	assert.NoError(t, CheckExactKeys([]byte(`{"STATEID":"s"}`), map[string]string{}))
	assert.NoError(t, CheckExactKeys([]byte(`{"STATEID":"s"}`), nil))
}
