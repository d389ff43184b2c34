package repository

// TxRepositories agrupa los repositorios atados a una misma transacción.
type TxRepositories struct {
	Clients   ClientRepository
	Products  ProductRepository
	Inventory InventoryRepository
	Movements InventoryMovementRepository
	Sales     SaleRepository
	Payments  PaymentRepository
}
