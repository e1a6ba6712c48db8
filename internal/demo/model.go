// Package demo holds a small order book used by the command line tool to
// show what an export looks like, and to load order books from YAML.
package demo

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/arthur-debert/tabexport/pkg/meta"
)

// Status is the lifecycle state of an order. Exports render it through the
// "order.status." messages.
type Status string

const (
	StatusOpen      Status = "open"
	StatusShipped   Status = "shipped"
	StatusCancelled Status = "cancelled"
)

type Address struct {
	Street  string `yaml:"street"`
	City    string `yaml:"city"`
	Zip     string `yaml:"zip"`
	Country string `yaml:"country"`
}

type Customer struct {
	ID    int       `yaml:"id"`
	Name  string    `yaml:"name" export:",label=column.customer.name"`
	Email string    `yaml:"email" export:",label=column.customer.email"`
	Since time.Time `yaml:"since" export:",label=column.customer.since,format=2006-01-02"`
	Notes string    `yaml:"notes" export:"-"`
}

func (Customer) ExportElement() meta.Element {
	return meta.Element{LabelKey: "title.customer"}
}

// Audit is embedded by records that track their edits.
type Audit struct {
	Version   int       `yaml:"version"`
	UpdatedAt time.Time `yaml:"updated_at"`
}

type Order struct {
	Audit    `yaml:",inline"`
	ID       int             `yaml:"id"`
	Number   string          `yaml:"number" export:",pos=0,label=column.order.number"`
	Status   Status          `yaml:"status" export:",pos=1,label=column.order.status,prefix=order.status."`
	Placed   time.Time       `yaml:"placed" export:",pos=2,label=column.order.placed"`
	Total    decimal.Decimal `yaml:"total" export:",pos=3,label=column.order.total"`
	Billing  Address         `yaml:"billing" exportprops:"city,pos=0,label=column.order.billing_city;country,pos=1,label=column.order.billing_country" exportset:"position=4"`
	Shipping *Address        `yaml:"shipping" exportprops:"city,label=column.order.shipping_city"`
	Customer *Customer       `yaml:"customer"`
}

func (Order) ExportElement() meta.Element {
	return meta.Element{LabelKey: "title.order"}
}
