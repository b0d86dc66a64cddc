package apimodel_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fabricate/pkg/generate"
	"github.com/goliatone/go-fabricate/pkg/kinds/apimodel"
)

type SignupRequest struct {
	apimodel.Base
	Email    string `validate:"required,email"`
	Nickname string `validate:"omitempty,min=2"`
	Age      int    `validate:"gte=0"`
}

func init() {
	apimodel.Register[SignupRequest]()
}

func TestGenerateDoesNotValidate(t *testing.T) {
	out, err := generate.Instance(reflect.TypeFor[SignupRequest](), generate.WithSeed(1))
	require.NoError(t, err)
	req := out.(*SignupRequest)

	// Fabricated strings are not valid emails; construction succeeds
	// anyway and validation is a separate, explicit step.
	assert.Equal(t, "1-str", req.Email)
	assert.Error(t, apimodel.Validate(req))
}

func TestValidateAppliesDeclaredRules(t *testing.T) {
	out, err := generate.Instance(reflect.TypeFor[SignupRequest](),
		generate.WithSeed(1),
		generate.WithOverride("Email", "jo@example.com"),
	)
	require.NoError(t, err)
	require.NoError(t, apimodel.Validate(out))

	assert.Error(t, apimodel.Validate(nil))
	assert.Error(t, apimodel.Validate(&SignupRequest{Email: "jo@example.com", Age: -1}))
}

func TestBaseAddsNoIntrinsicFields(t *testing.T) {
	descs, err := generate.Fields(reflect.TypeFor[SignupRequest]())
	require.NoError(t, err)

	var names []string
	for _, desc := range descs {
		names = append(names, desc.Name)
	}
	assert.Equal(t, []string{"Email", "Nickname", "Age"}, names)
}

func TestModelNameResolution(t *testing.T) {
	resolved, ok := apimodel.Types.Resolve("SignupRequest")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[SignupRequest](), resolved)
}
