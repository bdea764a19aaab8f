package goderive_test

import (
	goderive "github.com/reoring/goderive"
)

type User struct {
	FirstName string
	LastName  string
}

func userDescriptor() goderive.ProductDescriptor[User] {
	return goderive.Product[User]("User",
		goderive.Field("firstName", func(u *User) *string { return &u.FirstName }, goderive.String()),
		goderive.FieldDefault("lastName", func(u *User) *string { return &u.LastName }, goderive.String(), "Doe"),
	)
}

// Animal is a closed sum: only types in this file implement it.
type Animal interface{ isAnimal() }

type Dog struct{ Age int }

type Cat struct{ Color string }

type Fish struct{}

func (Dog) isAnimal()  {}
func (Cat) isAnimal()  {}
func (Fish) isAnimal() {}

func dogCodec(cfg *goderive.Config) *goderive.ProductCodec[Dog] {
	return goderive.MustDeriveProduct(goderive.Product[Dog]("Dog",
		goderive.Field("age", func(d *Dog) *int { return &d.Age }, goderive.Int()),
	), cfg)
}

func catCodec(cfg *goderive.Config) *goderive.ProductCodec[Cat] {
	return goderive.MustDeriveProduct(goderive.Product[Cat]("Cat",
		goderive.Field("color", func(c *Cat) *string { return &c.Color }, goderive.String()),
	), cfg)
}

func animalDescriptor(cfg *goderive.Config) goderive.SumDescriptor[Animal] {
	return goderive.Sum[Animal]("Animal",
		goderive.Case[Animal, Dog]("Dog", dogCodec(cfg)),
		goderive.Case[Animal, Cat]("Cat", catCodec(cfg)),
	)
}

func obj(members ...goderive.Member) goderive.Value { return goderive.NewObject(members...) }

func kv(k string, v goderive.Value) goderive.Member { return goderive.Member{Key: k, Value: v} }

func str(s string) goderive.Value { return goderive.NewString(s) }

func num(n int64) goderive.Value { return goderive.NewInt(n) }
