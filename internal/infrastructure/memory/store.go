// Package memory implementa los puertos de persistencia sobre estructuras en
// memoria. Lo usan los tests de casos de uso y sirve como backend efímero para
// demos sin PostgreSQL. Las transacciones se modelan con un mutex global más
// snapshot/restore: dentro de una tx nadie más toca el store, igual que los
// bloqueos de fila serializan a los escritores en PostgreSQL.
package memory

import (
	"sync"

	"github.com/jhoicas/donaciones-api/internal/domain/entity"
)

// Store contiene todo el estado en memoria. Las entidades se guardan clonadas:
// ni el store ni los llamadores comparten punteros a structs mutables.
type Store struct {
	mu sync.Mutex

	categories    map[string]*entity.Category
	products      map[string]*entity.Product
	movements     []*entity.StockMovement // append-only, en orden de creación
	donors        map[string]*entity.Donor
	donations     map[string]*entity.Donation
	donationItems map[string][]*entity.DonationItem
	beneficiaries map[string]*entity.Beneficiary
	distributions map[string]*entity.Distribution
	distItems     map[string][]*entity.DistributionItem
	users         map[string]*entity.User
}

// NewStore construye un store vacío.
func NewStore() *Store {
	return &Store{
		categories:    make(map[string]*entity.Category),
		products:      make(map[string]*entity.Product),
		donors:        make(map[string]*entity.Donor),
		donations:     make(map[string]*entity.Donation),
		donationItems: make(map[string][]*entity.DonationItem),
		beneficiaries: make(map[string]*entity.Beneficiary),
		distributions: make(map[string]*entity.Distribution),
		distItems:     make(map[string][]*entity.DistributionItem),
		users:         make(map[string]*entity.User),
	}
}

// snapshot clona el estado completo para poder restaurarlo en rollback.
type snapshot struct {
	categories    map[string]*entity.Category
	products      map[string]*entity.Product
	movements     []*entity.StockMovement
	donations     map[string]*entity.Donation
	donationItems map[string][]*entity.DonationItem
	beneficiaries map[string]*entity.Beneficiary
	distributions map[string]*entity.Distribution
	distItems     map[string][]*entity.DistributionItem
}

// take captura el estado mutable por las transacciones. donors y users quedan
// fuera: solo se mutan en operaciones de un solo paso, nunca dentro de una tx.
func (s *Store) take() *snapshot {
	snap := &snapshot{
		categories:    make(map[string]*entity.Category, len(s.categories)),
		products:      make(map[string]*entity.Product, len(s.products)),
		movements:     make([]*entity.StockMovement, len(s.movements)),
		donations:     make(map[string]*entity.Donation, len(s.donations)),
		donationItems: make(map[string][]*entity.DonationItem, len(s.donationItems)),
		beneficiaries: make(map[string]*entity.Beneficiary, len(s.beneficiaries)),
		distributions: make(map[string]*entity.Distribution, len(s.distributions)),
		distItems:     make(map[string][]*entity.DistributionItem, len(s.distItems)),
	}
	for id, c := range s.categories {
		snap.categories[id] = cloneCategory(c)
	}
	for id, p := range s.products {
		snap.products[id] = cloneProduct(p)
	}
	copy(snap.movements, s.movements) // los movimientos son inmutables, basta copiar el slice
	for id, d := range s.donations {
		snap.donations[id] = cloneDonation(d)
	}
	for id, items := range s.donationItems {
		cp := make([]*entity.DonationItem, len(items))
		for i, it := range items {
			cp[i] = cloneDonationItem(it)
		}
		snap.donationItems[id] = cp
	}
	for id, b := range s.beneficiaries {
		snap.beneficiaries[id] = cloneBeneficiary(b)
	}
	for id, d := range s.distributions {
		snap.distributions[id] = cloneDistribution(d)
	}
	for id, items := range s.distItems {
		cp := make([]*entity.DistributionItem, len(items))
		for i, it := range items {
			v := *it
			cp[i] = &v
		}
		snap.distItems[id] = cp
	}
	return snap
}

// restore devuelve el store al estado capturado (rollback).
func (s *Store) restore(snap *snapshot) {
	s.categories = snap.categories
	s.products = snap.products
	s.movements = snap.movements
	s.donations = snap.donations
	s.donationItems = snap.donationItems
	s.beneficiaries = snap.beneficiaries
	s.distributions = snap.distributions
	s.distItems = snap.distItems
}

func cloneCategory(c *entity.Category) *entity.Category {
	cp := *c
	return &cp
}

func cloneProduct(p *entity.Product) *entity.Product {
	cp := *p
	if p.EstimatedValue != nil {
		v := *p.EstimatedValue
		cp.EstimatedValue = &v
	}
	return &cp
}

func cloneMovement(m *entity.StockMovement) *entity.StockMovement {
	cp := *m
	return &cp
}

func cloneDonor(d *entity.Donor) *entity.Donor {
	cp := *d
	return &cp
}

func cloneDonation(d *entity.Donation) *entity.Donation {
	cp := *d
	if d.TotalCashValue != nil {
		v := *d.TotalCashValue
		cp.TotalCashValue = &v
	}
	if d.ProcessedAt != nil {
		t := *d.ProcessedAt
		cp.ProcessedAt = &t
	}
	return &cp
}

func cloneDonationItem(it *entity.DonationItem) *entity.DonationItem {
	cp := *it
	if it.CashAmount != nil {
		v := *it.CashAmount
		cp.CashAmount = &v
	}
	return &cp
}

func cloneBeneficiary(b *entity.Beneficiary) *entity.Beneficiary {
	cp := *b
	return &cp
}

func cloneDistribution(d *entity.Distribution) *entity.Distribution {
	cp := *d
	if d.TotalValue != nil {
		v := *d.TotalValue
		cp.TotalValue = &v
	}
	return &cp
}

func cloneUser(u *entity.User) *entity.User {
	cp := *u
	return &cp
}
