package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"github.com/GTDGit/pharmreg_api/internal/utils"
)

func TestObserveSearch_Outcomes(t *testing.T) {
	before := func(outcome string) float64 {
		return testutil.ToFloat64(SearchRequests.WithLabelValues("test", outcome))
	}
	ok, empty, invalid, failed := before("ok"), before("empty"), before("invalid"), before("error")

	ObserveSearch("test", 3, nil)
	ObserveSearch("test", 0, nil)
	ObserveSearch("test", 0, utils.ErrNoFilter)
	ObserveSearch("test", 0, utils.Validation("Invalid column: X"))
	ObserveSearch("test", 0, errors.New("connection reset"))

	assert.Equal(t, ok+1, before("ok"))
	assert.Equal(t, empty+1, before("empty"))
	assert.Equal(t, invalid+2, before("invalid"))
	assert.Equal(t, failed+1, before("error"))
}
