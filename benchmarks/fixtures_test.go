package benchmarks_test

import (
	"testing"

	goderive "github.com/reoring/goderive"
)

type Address struct {
	Street string
	City   string
}

type Customer struct {
	FirstName string
	LastName  string
	Email     string
	Tags      []string
	Address   Address
	Scores    map[int64]float64
}

type Event interface{ isEvent() }

type Created struct{ ID string }

type Renamed struct {
	ID   string
	Name string
}

type Deleted struct{}

func (Created) isEvent() {}
func (Renamed) isEvent() {}
func (Deleted) isEvent() {}

func newRegistry(tb testing.TB) *goderive.Registry {
	tb.Helper()
	r := goderive.NewRegistry()
	must := func(err error) {
		if err != nil {
			tb.Fatalf("register: %v", err)
		}
	}
	must(goderive.RegisterProduct(r, goderive.Product[Address]("Address",
		goderive.Field("Street", func(a *Address) *string { return &a.Street }, goderive.String()),
		goderive.Field("City", func(a *Address) *string { return &a.City }, goderive.String()),
	)))
	return r
}

func customerCodec(r *goderive.Registry, cfg *goderive.Config) *goderive.ProductCodec[Customer] {
	return goderive.MustDeriveProduct(goderive.Product[Customer]("Customer",
		goderive.Field("FirstName", func(c *Customer) *string { return &c.FirstName }, goderive.String()),
		goderive.FieldDefault("LastName", func(c *Customer) *string { return &c.LastName }, goderive.String(), ""),
		goderive.Field("Email", func(c *Customer) *string { return &c.Email }, goderive.String()),
		goderive.Field("Tags", func(c *Customer) *[]string { return &c.Tags }, goderive.SliceOf(goderive.String())),
		goderive.Field("Address", func(c *Customer) *Address { return &c.Address }, goderive.Ref[Address](r, cfg)),
		goderive.Field("Scores", func(c *Customer) *map[int64]float64 { return &c.Scores },
			goderive.MapOf(goderive.Int64Key(), goderive.Float64())),
	), cfg)
}

func eventCodec(cfg *goderive.Config) *goderive.SumCodec[Event] {
	return goderive.MustDeriveSum(goderive.Sum[Event]("Event",
		goderive.Case[Event, Created]("Created", goderive.MustDeriveProduct(goderive.Product[Created]("Created",
			goderive.Field("ID", func(c *Created) *string { return &c.ID }, goderive.String()),
		), cfg)),
		goderive.Case[Event, Renamed]("Renamed", goderive.MustDeriveProduct(goderive.Product[Renamed]("Renamed",
			goderive.Field("ID", func(c *Renamed) *string { return &c.ID }, goderive.String()),
			goderive.Field("Name", func(c *Renamed) *string { return &c.Name }, goderive.String()),
		), cfg)),
		goderive.Case[Event, Deleted]("Deleted", goderive.MustDeriveProduct(goderive.Product[Deleted]("Deleted"), cfg)),
	), cfg)
}

func sampleCustomer() Customer {
	return Customer{
		FirstName: "Ada",
		LastName:  "Lovelace",
		Email:     "ada@example.com",
		Tags:      []string{"math", "engines"},
		Address:   Address{Street: "St James's Square", City: "London"},
		Scores:    map[int64]float64{1: 0.5, 2: 1.25, 10: 3},
	}
}
