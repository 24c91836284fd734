package memory_test

import (
	"testing"

	"github.com/arushahmd/compass-voice/pkg/adapters/memory"
	"github.com/arushahmd/compass-voice/pkg/ports"
)

func TestMemoryStore_Contract(t *testing.T) {
	store := memory.NewStore()
	ports.RunSessionStoreContract(t, store)
}
