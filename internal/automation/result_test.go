package automation

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSuccessWireShape(t *testing.T) {
	data, err := json.Marshal(Success("hello"))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"result":"hello"}`, string(data))
}

func TestSuccessNilResult(t *testing.T) {
	data, err := json.Marshal(Success(nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"success":true,"result":null}`, string(data))
}

func TestFailureWireShape(t *testing.T) {
	data, err := json.Marshal(Failure(KindElementNotFound, "element not found: %s", "#x"))
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"success":false,"error":"element not found: #x","kind":"element_not_found"}`,
		string(data))
}

func TestFaultIsError(t *testing.T) {
	res := Failure(KindInternal, "boom")
	var err error = res.Error
	assert.Equal(t, "boom", err.Error())
}
