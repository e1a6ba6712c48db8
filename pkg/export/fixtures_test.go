package export_test

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthur-debert/tabexport/pkg/export"
	"github.com/arthur-debert/tabexport/pkg/meta"
)

type Person struct {
	ID      int
	Name    string
	Created time.Time
}

func (Person) ExportElement() meta.Element { return meta.Element{} }

type Address struct {
	Zip  string
	City string
}

type Customer struct {
	ID       int
	Name     string   `export:",label=customer.name"`
	Billing  Address  `exportprops:"city,pos=0,label=billing.city;zip,pos=1"`
	Shipping *Address `exportprops:"city"`
	Extra    any      `exportprops:"note"`
}

func (Customer) ExportElement() meta.Element { return meta.Element{LabelKey: "customer"} }

type Tag struct {
	ID    int
	Label string
}

func (Tag) ExportElement() meta.Element { return meta.Element{} }

type Post struct {
	ID    int
	Title string
	Main  *Tag
	Alt   *Tag
}

func (Post) ExportElement() meta.Element { return meta.Element{} }

type Node struct {
	ID   int
	Next *Node
}

func (*Node) ExportElement() meta.Element { return meta.Element{} }

type Secret struct {
	Code string
}

func (Secret) ExportElement() meta.Element { return meta.Element{Mode: meta.Ignore} }

type Bare struct {
	Value int
}

func (Bare) ExportElement() meta.Element { return meta.Element{Mode: meta.ExportSuperclassOnly} }

type Plain struct {
	Value int
}

type Hidden struct {
	Value int
}

func (Hidden) ExportElement() meta.Element { return meta.Element{} }
func (Hidden) Unexportable()               {}

type Holder struct {
	ID     int
	Secret Secret
	Bare   Bare
	Plain  Plain
	Hidden *Hidden
	Note   string
}

func (Holder) ExportElement() meta.Element { return meta.Element{} }

type Base struct {
	ID      int
	Created time.Time
}

type Audited struct {
	Base
	Internal string
}

func (Audited) ExportElement() meta.Element { return meta.Element{Mode: meta.ExportSuperclassOnly} }

type Ranked struct {
	A  string
	B  string `export:",pos=2"`
	C  string
	D  string `export:",pos=1"`
	ID int
}

func (Ranked) ExportElement() meta.Element { return meta.Element{} }

type Document struct {
	ID      int `export:"-"`
	Title   string
	Hash    string `export:"-"`
	Version int
}

func (Document) ExportElement() meta.Element { return meta.Element{} }

type Order struct {
	ID     int
	Status string `export:",prefix=order.status."`
	State  string
	Total  float64
}

func (Order) ExportElement() meta.Element {
	return meta.Element{Properties: []meta.Property{
		{Name: "state", PrefixKey: "order.state."},
		{Name: "status"},
	}}
}

type Event struct {
	ID    int
	At    time.Time `export:",format=2006-01-02"`
	Score float64   `export:",format=%.1f"`
}

func (Event) ExportElement() meta.Element { return meta.Element{} }

type Invoice struct {
	ID       int
	Customer *export.Lazy[*Person]
}

func (Invoice) ExportElement() meta.Element { return meta.Element{} }

type Shelf struct {
	ID    int
	Left  *Tag
	Right *Person
}

func (Shelf) ExportElement() meta.Element { return meta.Element{} }

type BadRef struct {
	ID   int
	Home Address `exportprops:"street"`
}

func (BadRef) ExportElement() meta.Element { return meta.Element{} }

type City struct {
	ID   int
	Name string
}

func (City) ExportElement() meta.Element { return meta.Element{} }

type Venue struct {
	Zip  string
	City *City
}

type Site struct {
	ID    int
	Addr  Venue `exportprops:"zip;city"`
	Other *City
}

func (Site) ExportElement() meta.Element { return meta.Element{} }

type Ledger struct {
	ID      int
	Balance decimal.Decimal `export:",format=%.2f"`
}

func (Ledger) ExportElement() meta.Element { return meta.Element{} }

type BadLayout struct {
	ID   int
	Name string `export:",format=2006-01-02"`
}

func (BadLayout) ExportElement() meta.Element { return meta.Element{} }

type BadVerb struct {
	ID    int
	Count int `export:",format=%d of %d"`
}

func (BadVerb) ExportElement() meta.Element { return meta.Element{} }

type BadSubFormat struct {
	ID   int
	Home Address `exportprops:"zip,format=%d"`
}

func (BadSubFormat) ExportElement() meta.Element { return meta.Element{} }
