// Package memory implementa todos los puertos de repositorio sobre mapas en memoria.
// Se usa con DB_DRIVER=memory y como respaldo de los tests de casos de uso.
package memory

import (
	"context"
	"maps"
	"slices"
	"sync"

	"github.com/jhoicas/optica-erp/internal/domain/entity"
	"github.com/jhoicas/optica-erp/internal/domain/repository"
)

type dataset struct {
	clients   map[string]entity.Client
	products  map[string]entity.Product
	inventory map[string]entity.InventoryRecord // clave productID|location
	movements []entity.InventoryMovement
	sales     map[string]entity.Sale
	payments  []entity.Payment
	sequences map[string]int
}

func newDataset() *dataset {
	return &dataset{
		clients:   make(map[string]entity.Client),
		products:  make(map[string]entity.Product),
		inventory: make(map[string]entity.InventoryRecord),
		sales:     make(map[string]entity.Sale),
		sequences: make(map[string]int),
	}
}

func (d *dataset) clone() *dataset {
	return &dataset{
		clients:   maps.Clone(d.clients),
		products:  maps.Clone(d.products),
		inventory: maps.Clone(d.inventory),
		movements: slices.Clone(d.movements),
		sales:     maps.Clone(d.sales),
		payments:  slices.Clone(d.payments),
		sequences: maps.Clone(d.sequences),
	}
}

// Store es la base en memoria. Una transacción toma el lock global durante todo Run,
// trabaja sobre una copia del dataset y la publica solo si fn termina sin error.
type Store struct {
	mu   sync.Mutex
	data *dataset
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{data: newDataset()}
}

// Run ejecuta fn con repositorios atados a una transacción. Commit si fn devuelve nil, rollback si no.
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepositories) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := ctx.Err(); err != nil {
		return err
	}
	tx := s.data.clone()
	if err := fn(reposFor(&view{ds: tx})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.data = tx
	return nil
}

// Repositories devuelve repositorios fuera de transacción; cada llamada toma el lock por su cuenta.
func (s *Store) Repositories() repository.TxRepositories {
	return reposFor(&view{store: s})
}

func reposFor(v *view) repository.TxRepositories {
	return repository.TxRepositories{
		Clients:   &ClientRepo{v: v},
		Products:  &ProductRepo{v: v},
		Inventory: &InventoryRepo{v: v},
		Movements: &MovementRepo{v: v},
		Sales:     &SaleRepo{v: v},
		Payments:  &PaymentRepo{v: v},
	}
}

// view resuelve sobre qué dataset opera un repositorio: la copia de una tx (lock ya tomado)
// o el dataset publicado (lock por operación).
type view struct {
	store *Store
	ds    *dataset
}

func (v *view) with(fn func(ds *dataset) error) error {
	if v.ds != nil {
		return fn(v.ds)
	}
	v.store.mu.Lock()
	defer v.store.mu.Unlock()
	return fn(v.store.data)
}

func page[T any](list []T, limit, offset int) []T {
	if offset >= len(list) {
		return []T{}
	}
	list = list[offset:]
	if limit > 0 && len(list) > limit {
		list = list[:limit]
	}
	return list
}
