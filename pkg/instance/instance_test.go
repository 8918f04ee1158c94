package instance

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenTraceLab/OpenTraceUVM/pkg/vip"
)

func TestModeText(t *testing.T) {
	for _, m := range Modes {
		b, err := m.MarshalText()
		require.NoError(t, err)

		var got Mode
		require.NoError(t, got.UnmarshalText(b))
		assert.Equal(t, m, got)
	}

	var m Mode
	require.NoError(t, m.UnmarshalText([]byte("passive")))
	assert.Equal(t, Passive, m)

	assert.Error(t, m.UnmarshalText([]byte("Monitor")))
	assert.Equal(t, Passive, m, "failed unmarshal keeps the previous value")

	_, err := Mode(9).MarshalText()
	assert.Error(t, err)
	assert.Equal(t, "Mode(9)", Mode(9).String())
}

func TestDefaultModeIsController(t *testing.T) {
	var inst Instance
	assert.Equal(t, Controller, inst.Mode)
}

func TestInstanceNaming(t *testing.T) {
	inst := Instance{VIPName: "fifo_in", Mode: Responder}
	assert.Equal(t, "fifo_in_responder_x", inst.Name())
	assert.Equal(t, "ID unset mode Responder vip fifo_in", inst.String())
	assert.False(t, inst.HasID())

	inst.ID = ID(4)
	assert.True(t, inst.HasID())
	assert.Equal(t, "fifo_in_responder_4", inst.Name())
	assert.Equal(t, "ID 4 mode Responder vip fifo_in", inst.String())
}

func TestSelfTest(t *testing.T) {
	v, err := vip.New(vip.Config{Name: "bus", Ports: []string{"addr [3:0]", "we"}})
	require.NoError(t, err)

	list := SelfTest(v)
	require.Len(t, list, 3)

	assert.Equal(t, []Mode{Controller, Passive, Responder},
		[]Mode{list[0].Mode, list[1].Mode, list[2].Mode})
	for _, inst := range list {
		assert.Equal(t, "bus", inst.VIPName)
		assert.Equal(t, []string{"addr", "we"}, inst.ConnectedTo)
		require.NotNil(t, inst.ID)
		assert.Equal(t, uint32(0), *inst.ID)
	}

	list[0].ConnectedTo[0] = "changed"
	assert.Equal(t, "addr", list[1].ConnectedTo[0])
}
