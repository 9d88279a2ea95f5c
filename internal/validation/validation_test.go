package validation

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type payload struct {
	Email string `validate:"required,email"`
	Items []item `validate:"required,min=1,dive"`
}

type item struct {
	Key string `validate:"required"`
	Qty int    `validate:"required,min=1"`
}

func TestCheckValid(t *testing.T) {
	v := New()
	errs := Check(v, payload{Email: "u@x.com", Items: []item{{Key: "A", Qty: 1}}})
	assert.Nil(t, errs)
}

func TestCheckCollectsFieldErrors(t *testing.T) {
	v := New()
	errs := Check(v, payload{Email: "not-an-email", Items: []item{{Key: "", Qty: 0}}})
	assert.NotEmpty(t, errs)
	assert.Contains(t, errs, "payload.Email")
	assert.Contains(t, errs, "payload.Items[0].Key")
	assert.Contains(t, errs, "payload.Items[0].Qty")
}

func TestCheckEmptyItemList(t *testing.T) {
	v := New()
	errs := Check(v, payload{Email: "u@x.com"})
	assert.Contains(t, errs, "payload.Items")
}
