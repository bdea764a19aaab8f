package compare_test

import (
	"bytes"
	"strconv"

	goderive "github.com/reoring/goderive"
)

type Meta struct {
	Score int `json:"score"`
}

type Person struct {
	ID     string `json:"id"`
	Name   string `json:"name"`
	Age    int    `json:"age"`
	Active bool   `json:"active"`
	Meta   Meta   `json:"meta"`
}

var (
	metaCodec = goderive.MustDeriveProduct(goderive.Product[Meta]("Meta",
		goderive.Field("score", func(m *Meta) *int { return &m.Score }, goderive.Int()),
	), nil)

	personDescriptor = goderive.Product[Person]("Person",
		goderive.Field("id", func(p *Person) *string { return &p.ID }, goderive.String()),
		goderive.Field("name", func(p *Person) *string { return &p.Name }, goderive.String()),
		goderive.Field("age", func(p *Person) *int { return &p.Age }, goderive.Int()),
		goderive.Field("active", func(p *Person) *bool { return &p.Active }, goderive.Bool()),
		goderive.Field("meta", func(p *Person) *Meta { return &p.Meta }, metaCodec),
	)

	personCodec   = goderive.MustDeriveProduct(personDescriptor, nil)
	personsCodec  = goderive.SliceOf[Person](personCodec)
	strictPersons = goderive.MustDeriveProduct(personDescriptor, goderive.NewConfig().WithStrictDecoding(true))
)

func smallPersonJSON() []byte {
	return []byte(`{"id":"u_1","name":"alice","age":30,"active":true,"meta":{"score":7}}`)
}

const (
	cmpHugeN = 10000
	cmpHugeK = 8
)

// generateHugeJSONArray writes numObjects persons, each with extraFields
// string members the Person type does not know about.
func generateHugeJSONArray(numObjects int, extraFields int) []byte {
	var buf bytes.Buffer
	buf.Grow(numObjects * (64 + extraFields*16))
	buf.WriteByte('[')
	for i := 0; i < numObjects; i++ {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(`{"id":"obj_`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`","name":"n`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteString(`","age":`)
		buf.WriteString(strconv.Itoa(i))
		if i%2 == 0 {
			buf.WriteString(`,"active":true`)
		} else {
			buf.WriteString(`,"active":false`)
		}
		buf.WriteString(`,"meta":{"score":`)
		buf.WriteString(strconv.Itoa(i))
		buf.WriteByte('}')
		for k := 0; k < extraFields; k++ {
			buf.WriteString(`,"k`)
			buf.WriteString(strconv.Itoa(k))
			buf.WriteString(`":"v`)
			buf.WriteString(strconv.Itoa(i))
			buf.WriteByte('_')
			buf.WriteString(strconv.Itoa(k))
			buf.WriteByte('"')
		}
		buf.WriteByte('}')
	}
	buf.WriteByte(']')
	return buf.Bytes()
}
