package dian_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Inmuebles-api/pkg/dian"
)

func TestComputeVerificationDigit(t *testing.T) {
	cases := map[string]byte{
		"800197268":   '4', // NIT de la DIAN
		"800.197.268": '4',
		"900123456":   '8',
		"1020304050":  '8',
		"12345":       '8',
	}
	for base, want := range cases {
		got, err := dian.ComputeVerificationDigit(base)
		require.NoError(t, err, base)
		assert.Equal(t, want, got, "DV de %s", base)
	}
}

func TestComputeVerificationDigit_SinDigitos(t *testing.T) {
	_, err := dian.ComputeVerificationDigit("abc")
	assert.ErrorIs(t, err, dian.ErrInvalidNIT)
}

func TestValidate(t *testing.T) {
	got, err := dian.Validate("800.197.268-4")
	require.NoError(t, err)
	assert.Equal(t, "800197268-4", got)

	_, err = dian.Validate("800197268-5")
	assert.ErrorIs(t, err, dian.ErrInvalidNIT, "DV incorrecto")

	_, err = dian.Validate("800197268")
	assert.ErrorIs(t, err, dian.ErrInvalidNIT, "sin DV")

	_, err = dian.Validate("800197268-")
	assert.ErrorIs(t, err, dian.ErrInvalidNIT, "DV vacío")
}
