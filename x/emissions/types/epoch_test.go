package types

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEpochStart(t *testing.T) {
	specs := map[string]struct {
		ts       uint64
		expStart uint64
	}{
		"before first epoch": {ts: EpochsStart - 1, expStart: EpochsStart},
		"first epoch start":  {ts: EpochsStart, expStart: EpochsStart},
		"within first epoch": {ts: EpochsStart + EpochLength - 1, expStart: EpochsStart},
		"second epoch start": {ts: EpochsStart + EpochLength, expStart: EpochsStart + EpochLength},
		"later epoch":        {ts: EpochsStart + 5*EpochLength + 3600, expStart: EpochsStart + 5*EpochLength},
	}
	for name, spec := range specs {
		t.Run(name, func(t *testing.T) {
			assert.Equal(t, spec.expStart, EpochStart(spec.ts))
			assert.Equal(t, spec.expStart+EpochLength, NextEpochStart(spec.ts))
		})
	}
}
