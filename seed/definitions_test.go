package seed

import (
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/votecard/cardflow/persistence/inmem"
)

func TestDefinitionsAreValid(t *testing.T) {
	for _, def := range Definitions() {
		def := def
		t.Run(def.Name, func(t *testing.T) {
			require.NoError(t, def.Validate())
		})
	}
}

func TestRegisterIsIdempotent(t *testing.T) {
	storage := inmem.NewInmemMetadataStorage()
	require.NoError(t, Register(storage))
	require.NoError(t, Register(storage))

	for _, def := range Definitions() {
		loaded, err := storage.GetWorkflowDefinition(def.Name)
		require.NoError(t, err)
		require.Equal(t, def.Name, loaded.Name)
	}
}

func TestRedemptionRejectConfig(t *testing.T) {
	def := CardRedemption()
	require.Equal(t, "cardCode", def.RejectField)
	require.Equal(t, "^FAIL", def.RejectPattern)
	require.Equal(t, "This card code is invalid or has already been used.", def.RejectMessage)
}
