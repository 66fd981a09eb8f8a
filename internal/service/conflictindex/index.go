package conflictindex

import (
	"sort"
	"sync"

	"github.com/m04kA/CMS-SchedulingService/internal/domain"
)

// Index in-memory индекс занятых интервалов по профессионалам.
//
// Для каждого профессионала хранится отсортированный по началу список
// интервалов записей в занимающих статусах. Поскольку координатор не
// допускает пересечения занимающих интервалов одного профессионала,
// поиск пересечений работает бинарным поиском за O(log n + k) вместо
// линейного прохода по всем записям.
//
// Сам индекс пересечения не запрещает - он только отвечает на запросы.
// Инвариант неналожения обеспечивается сериализацией мутаций в координаторе.
type Index struct {
	mu            sync.RWMutex
	professionals map[int64]*professionalIntervals
	size          int
}

// entry проекция записи: id + интервал
type entry struct {
	id       int64
	interval domain.TimeRange
}

// professionalIntervals интервалы одного профессионала
type professionalIntervals struct {
	// byStart отсортирован по interval.Start
	byStart []entry
	// byID для идемпотентности вставки и быстрого удаления
	byID map[int64]domain.TimeRange
}

// New создает пустой индекс
func New() *Index {
	return &Index{
		professionals: make(map[int64]*professionalIntervals),
	}
}

// Overlaps возвращает id записей, пересекающихся с интервалом (полуоткрытое
// правило: касание границ пересечением не считается). excludeID позволяет
// переносу игнорировать собственный прежний интервал записи; 0 - без исключений.
func (idx *Index) Overlaps(professionalID int64, interval domain.TimeRange, excludeID int64) []int64 {
	idx.mu.RLock()
	defer idx.mu.RUnlock()

	prof, ok := idx.professionals[professionalID]
	if !ok {
		return nil
	}

	// Интервалы с началом не раньше конца запроса пересекаться не могут
	hi := sort.Search(len(prof.byStart), func(i int) bool {
		return !prof.byStart[i].interval.Start.Before(interval.End)
	})

	var conflicting []int64
	for i := hi - 1; i >= 0; i-- {
		e := prof.byStart[i]
		if e.id != excludeID && e.interval.Overlaps(interval) {
			conflicting = append(conflicting, e.id)
		}
		// Пока инвариант неналожения соблюдается, порядок по началу совпадает
		// с порядком по концу: первый интервал, закончившийся до начала запроса,
		// означает, что более ранние тоже не пересекаются
		if !e.interval.End.After(interval.Start) {
			break
		}
	}

	// Разворачиваем в порядок возрастания начала интервала
	for i, j := 0, len(conflicting)-1; i < j; i, j = i+1, j-1 {
		conflicting[i], conflicting[j] = conflicting[j], conflicting[i]
	}

	return conflicting
}

// Insert добавляет интервал записи в индекс. Идемпотентна по id:
// повторная вставка того же id заменяет интервал.
func (idx *Index) Insert(professionalID, appointmentID int64, interval domain.TimeRange) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	prof, ok := idx.professionals[professionalID]
	if !ok {
		prof = &professionalIntervals{byID: make(map[int64]domain.TimeRange)}
		idx.professionals[professionalID] = prof
	}

	if _, exists := prof.byID[appointmentID]; exists {
		prof.removeLocked(appointmentID)
		idx.size--
	}

	prof.insertLocked(appointmentID, interval)
	idx.size++
}

// Remove убирает запись из индекса. Отсутствующий id игнорируется.
func (idx *Index) Remove(professionalID, appointmentID int64) {
	idx.mu.Lock()
	defer idx.mu.Unlock()

	prof, ok := idx.professionals[professionalID]
	if !ok {
		return
	}
	if _, exists := prof.byID[appointmentID]; !exists {
		return
	}

	prof.removeLocked(appointmentID)
	idx.size--

	if len(prof.byID) == 0 {
		delete(idx.professionals, professionalID)
	}
}

// Update атомарно заменяет интервал записи
func (idx *Index) Update(professionalID, appointmentID int64, newInterval domain.TimeRange) {
	// Insert идемпотентна - замена интервала выполняется под одной блокировкой
	idx.Insert(professionalID, appointmentID, newInterval)
}

// Size возвращает общее количество интервалов в индексе (для метрик)
func (idx *Index) Size() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return idx.size
}

// insertLocked вставляет запись с сохранением сортировки. Вызывается под idx.mu.
func (p *professionalIntervals) insertLocked(id int64, interval domain.TimeRange) {
	pos := sort.Search(len(p.byStart), func(i int) bool {
		return p.byStart[i].interval.Start.After(interval.Start)
	})

	p.byStart = append(p.byStart, entry{})
	copy(p.byStart[pos+1:], p.byStart[pos:])
	p.byStart[pos] = entry{id: id, interval: interval}
	p.byID[id] = interval
}

// removeLocked удаляет запись по id. Вызывается под idx.mu.
func (p *professionalIntervals) removeLocked(id int64) {
	for i, e := range p.byStart {
		if e.id == id {
			p.byStart = append(p.byStart[:i], p.byStart[i+1:]...)
			break
		}
	}
	delete(p.byID, id)
}
