package notify

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMultiForwardsToEverySink(t *testing.T) {
	t.Parallel()

	a, b := &Recorder{}, &Recorder{}
	var called bool
	m := Multi{a, nil, b, Func(func(string, Severity) { called = true })}

	m.Notify("Topic completed", Success)

	assert.Equal(t, []Message{{Text: "Topic completed", Severity: Success}}, a.Messages())
	assert.Equal(t, a.Messages(), b.Messages())
	assert.True(t, called)
}

func TestNopAndLogDoNotPanic(t *testing.T) {
	t.Parallel()

	assert.NotPanics(t, func() {
		Nop{}.Notify("x", Info)
		Log{}.Notify("x", Error)
	})
}
