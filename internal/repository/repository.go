package repository

import "gorm.io/gorm"

type Repository struct {
	DB         *gorm.DB
	Customers  CustomerRepo
	Products   ProductRepo
	Orders     OrderRepo
	OrderItems OrderItemRepo
}

func New(db *gorm.DB) *Repository {
	return &Repository{
		DB:         db,
		Customers:  NewCustomerRepo(db),
		Products:   NewProductRepo(db),
		Orders:     NewOrderRepo(db),
		OrderItems: NewOrderItemRepo(db),
	}
}
