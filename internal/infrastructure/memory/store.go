// Package memory implementa los repositorios en memoria del proceso; lo usan los tests y
// STORAGE_DRIVER=memory para demos locales. Los datos se pierden al reiniciar.
package memory

import (
	"maps"
	"sync"

	"github.com/jhoicas/stock-ledger/internal/domain/entity"
)

// Store guarda todas las tablas detrás de un mutex. Las transacciones lo retienen mientras duran,
// así se serializan entre sí y con las llamadas sueltas a los repositorios.
type Store struct {
	mu sync.Mutex

	ledger map[int64]entity.LedgerEntry
	stock  map[int64]entity.StoreStock
	counts map[int64]entity.PhysicalCount

	ledgerSeq int64
	stockSeq  int64
	countSeq  int64

	items     []entity.Item
	stores    []entity.Store
	suppliers []entity.Supplier
}

// New devuelve un store vacío.
func New() *Store {
	return &Store{
		ledger: make(map[int64]entity.LedgerEntry),
		stock:  make(map[int64]entity.StoreStock),
		counts: make(map[int64]entity.PhysicalCount),
	}
}

// NewSeeded devuelve un store precargado con las tiendas y proveedores de las demos.
func NewSeeded() *Store {
	s := New()
	s.stores = []entity.Store{
		{Code: "000003", Name: "놀부유황오리진흙구이 잠실점"},
		{Code: "000004", Name: "놀부부대찌개&족발보쌈 난곡점"},
		{Code: "000005", Name: "놀부항아리갈비 마포광흥창점"},
		{Code: "000006", Name: "놀부항아리갈비 명일점"},
		{Code: "000158", Name: "놀부청담직영점"},
	}
	for _, name := range []string{
		"본사", "웰스토리", "본사소모품", "웰스토리소모품", "봄맛푸드소모품",
		"우리와인", "고성주류", "서린주류", "퐁당수산", "제주더플러스", "봄맛푸드",
		"누리미트", "기대상사", "미트맨", "강남유통", "삼성", "외부사입", "원천주류",
		"의창실업", "금성", "원하나", "복주", "파낙스", "마루", "대농마트",
	} {
		s.suppliers = append(s.suppliers, entity.Supplier{Name: name})
	}
	return s
}

// SetReference reemplaza los datos de referencia. Los tests lo usan para controlar las listas.
func (s *Store) SetReference(items []entity.Item, stores []entity.Store, suppliers []entity.Supplier) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items, s.stores, s.suppliers = items, stores, suppliers
}

type snapshot struct {
	ledger    map[int64]entity.LedgerEntry
	stock     map[int64]entity.StoreStock
	counts    map[int64]entity.PhysicalCount
	ledgerSeq int64
	stockSeq  int64
	countSeq  int64
}

// las entidades no comparten estado mutable, así que copiar el mapa superficialmente es un snapshot completo.
func (s *Store) snapshot() snapshot {
	return snapshot{
		ledger:    maps.Clone(s.ledger),
		stock:     maps.Clone(s.stock),
		counts:    maps.Clone(s.counts),
		ledgerSeq: s.ledgerSeq,
		stockSeq:  s.stockSeq,
		countSeq:  s.countSeq,
	}
}

func (s *Store) restore(snap snapshot) {
	s.ledger, s.stock, s.counts = snap.ledger, snap.stock, snap.counts
	s.ledgerSeq, s.stockSeq, s.countSeq = snap.ledgerSeq, snap.stockSeq, snap.countSeq
}

// guard bloquea el store salvo que quien llama ya esté dentro de una transacción.
type guard struct {
	s    *Store
	inTx bool
}

func (g guard) lock() func() {
	if g.inTx {
		return func() {}
	}
	g.s.mu.Lock()
	return g.s.mu.Unlock
}
