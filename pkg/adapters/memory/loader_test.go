package memory_test

import (
	"context"
	"testing"

	"github.com/arushahmd/compass-voice/internal/testutils"
	"github.com/arushahmd/compass-voice/pkg/adapters/memory"
	contract "github.com/arushahmd/compass-voice/pkg/ports/tests"
	"github.com/stretchr/testify/assert"
)

func TestInMemoryLoader_Contract(t *testing.T) {
	loader := memory.NewMenuLoader([]byte(testutils.MenuYAML), ".yaml")
	contract.MenuLoaderContractTest(t, loader, "demo", "taco_chicken", "brownie", "soda")
}

func TestInMemoryLoader_Empty(t *testing.T) {
	_, err := memory.NewMenuLoader(nil, ".yaml").LoadMenu(context.Background())
	assert.Error(t, err)
}
