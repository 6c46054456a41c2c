package hotelweather_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/AndKraev/hotelweather"
	"github.com/stretchr/testify/assert"
)

func TestErrorCode(t *testing.T) {
	t.Parallel()

	t.Run("returns code of application error", func(t *testing.T) {
		t.Parallel()
		err := hotelweather.Errorf(hotelweather.EINVALID, "bad input")
		assert.Equal(t, hotelweather.EINVALID, hotelweather.ErrorCode(err))
	})

	t.Run("returns code of wrapped application error", func(t *testing.T) {
		t.Parallel()
		err := fmt.Errorf("outer: %w", hotelweather.Errorf(hotelweather.ENOTFOUND, "missing"))
		assert.Equal(t, hotelweather.ENOTFOUND, hotelweather.ErrorCode(err))
	})

	t.Run("returns EINTERNAL for non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, hotelweather.EINTERNAL, hotelweather.ErrorCode(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", hotelweather.ErrorCode(nil))
	})
}

func TestErrorMessage(t *testing.T) {
	t.Parallel()

	t.Run("returns message of application error", func(t *testing.T) {
		t.Parallel()
		err := hotelweather.Errorf(hotelweather.EUNAVAILABLE, "upstream down")
		assert.Equal(t, "upstream down", hotelweather.ErrorMessage(err))
	})

	t.Run("masks non-application error", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "Internal error.", hotelweather.ErrorMessage(errors.New("boom")))
	})

	t.Run("returns empty string for nil", func(t *testing.T) {
		t.Parallel()
		assert.Equal(t, "", hotelweather.ErrorMessage(nil))
	})
}
