package record_test

import (
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/goliatone/go-fabricate/pkg/generate"
	"github.com/goliatone/go-fabricate/pkg/kinds/record"
)

type LineItem struct {
	Description string
	Quantity    int
}

type Invoice struct {
	Number int
	Lines  []LineItem
	Extra  any `fab:"oneof=Discount|nil"`
}

type Coupon struct {
	Code string
}

func init() {
	record.Register[Invoice]()
	record.Register[LineItem]()
	record.Register[Coupon]("Discount")
}

func TestPlainStructsFallBackToRecordKind(t *testing.T) {
	out, err := generate.Instance(reflect.TypeFor[Invoice](), generate.WithSeed(1))
	require.NoError(t, err)
	invoice := out.(*Invoice)

	assert.Equal(t, 1, invoice.Number)
	assert.Empty(t, invoice.Lines)
	assert.Nil(t, invoice.Extra)
}

func TestAliasResolvesThroughUnionTag(t *testing.T) {
	out, err := generate.Instance(reflect.TypeFor[Invoice](), generate.WithSeed(1), generate.ExpandRelationships())
	require.NoError(t, err)
	invoice := out.(*Invoice)

	require.Len(t, invoice.Lines, 1)
	assert.Equal(t, "2-str", invoice.Lines[0].Description)
	assert.Equal(t, 3, invoice.Lines[0].Quantity)

	coupon, ok := invoice.Extra.(*Coupon)
	require.True(t, ok)
	assert.Equal(t, "1002-str", coupon.Code)
}

func TestRecordNameResolution(t *testing.T) {
	resolved, ok := record.Types.Resolve("Discount")
	require.True(t, ok)
	assert.Equal(t, reflect.TypeFor[Coupon](), resolved)
}
