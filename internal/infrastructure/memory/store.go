// Package memory implementa los puertos de persistencia en memoria.
// Se usa con STORE_DRIVER=memory (demo local) y como doble de repositorio en los tests.
package memory

import (
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/Varejo-api/internal/domain/entity"
)

// Store mantiene todas las tablas en mapas protegidos por un RWMutex.
// Las importaciones de un mismo tenant se serializan con un mutex por tenant (ver TxRunner).
type Store struct {
	mu        sync.RWMutex
	tenants   map[string]*entity.Tenant
	employees map[string]*entity.Employee
	products  map[string]*entity.Product
	suppliers map[string]*entity.Supplier

	locksMu     sync.Mutex
	tenantLocks map[string]*sync.Mutex
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{
		tenants:     make(map[string]*entity.Tenant),
		employees:   make(map[string]*entity.Employee),
		products:    make(map[string]*entity.Product),
		suppliers:   make(map[string]*entity.Supplier),
		tenantLocks: make(map[string]*sync.Mutex),
	}
}

// Tenants devuelve el repositorio de tenants.
func (s *Store) Tenants() *TenantRepo { return &TenantRepo{s: s} }

// Employees devuelve el repositorio de empleados.
func (s *Store) Employees() *EmployeeRepo { return &EmployeeRepo{s: s} }

// Products devuelve el repositorio de productos.
func (s *Store) Products() *ProductRepo { return &ProductRepo{s: s} }

// Suppliers devuelve el repositorio de proveedores.
func (s *Store) Suppliers() *SupplierRepo { return &SupplierRepo{s: s} }

func (s *Store) tenantLock(tenantID string) *sync.Mutex {
	s.locksMu.Lock()
	defer s.locksMu.Unlock()
	l, ok := s.tenantLocks[tenantID]
	if !ok {
		l = &sync.Mutex{}
		s.tenantLocks[tenantID] = l
	}
	return l
}

// newestFirst ordena por CreatedAt descendente; empata por ID para un orden estable.
func newestFirst[T any](items []T, createdAt func(T) time.Time, id func(T) string) {
	sort.SliceStable(items, func(i, j int) bool {
		ci, cj := createdAt(items[i]), createdAt(items[j])
		if !ci.Equal(cj) {
			return ci.After(cj)
		}
		return id(items[i]) < id(items[j])
	})
}

func page[T any](items []T, limit, offset int) []T {
	if offset >= len(items) {
		return nil
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}
