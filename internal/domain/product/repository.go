package product

import "github.com/amir-ae/commerce-api-lite-sub001/aggregate"

type (
	Getter     = aggregate.Getter[ID, *Product]
	Saver      = aggregate.Saver[ID, *Product]
	Repository = aggregate.Repository[ID, *Product]
)
