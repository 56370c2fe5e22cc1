package customer

import "github.com/amir-ae/commerce-api-lite-sub001/aggregate"

type (
	Getter     = aggregate.Getter[ID, *Customer]
	Saver      = aggregate.Saver[ID, *Customer]
	Repository = aggregate.Repository[ID, *Customer]
)
