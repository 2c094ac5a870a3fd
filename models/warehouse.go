package models

import (
	"database/sql"
	"time"
)

// DateDimension представляет запись календарного измерения в хранилище
// Ключ DateKey имеет вид YYYYMMDD и является одновременно естественным
// и суррогатным ключом измерения
type DateDimension struct {
	DateKey    int
	FullDate   time.Time
	Year       int
	Quarter    int
	Month      int
	MonthName  string // Jan…Dec
	DayOfMonth int
	DayOfWeek  int // ISO: Пн=1 … Вс=7
	IsWeekend  bool
}

// CustomerDimension представляет измерение клиентов
// CustomerNK — естественный ключ (идентификатор клиента из staging),
// CustomerKey — суррогатный ключ, назначается один раз и навсегда
type CustomerDimension struct {
	CustomerKey    int
	CustomerNK     string
	Name           string
	Email          string
	Age            sql.NullInt64
	Gender         string
	MaritalStatus  string
	Occupation     string
	FamilySize     sql.NullInt64
	IncomeBracket  string // производный атрибут, пересчитывается каждым циклом
	IncomeRank     int
	EducationLevel string // производный атрибут
	EducationRank  int
	LastUpdated    time.Time
}

// RestaurantDimension представляет измерение ресторанов
// LocationKey назначается гео-сопоставлением и никогда не перезаписывается
type RestaurantDimension struct {
	RestaurantKey int
	RestaurantNK  string
	Name          string
	City          string
	Rating        sql.NullFloat64
	Cuisines      string
	LocationKey   sql.NullInt64
	LastUpdated   time.Time
}

// LocationDimension представляет измерение локаций
// Естественный ключ — конкатенация страны, региона и города
type LocationDimension struct {
	LocationKey int
	LocationNK  string
	Country     string
	State       string
	City        string
	LastUpdated time.Time
}

// OrderFactRow представляет строку факта заказа, подготовленную фазой
// Transform: внешние суррогатные ключи клиента и ресторана ещё не
// разрешены, разрешение выполняется в фазе Load по естественным ключам
type OrderFactRow struct {
	NaturalKey   string
	CustomerNK   string
	RestaurantNK string
	DateKey      int
	Quantity     int
	Amount       float64
	Currency     string
}

// OrderFact представляет строку фактовой таблицы в хранилище
type OrderFact struct {
	OrderKey      int
	OrderNK       string
	DateKey       int
	CustomerKey   int
	RestaurantKey int
	LocationKey   sql.NullInt64
	Quantity      int
	Amount        float64
	Currency      string
	LastUpdated   time.Time
}

// TransformedData содержит результат фазы Transform для загрузки в хранилище
type TransformedData struct {
	// Измерения
	Dates       []DateDimension
	Customers   []CustomerDimension
	Restaurants []RestaurantDimension
	Locations   []LocationDimension

	// Факты (ключи ещё не разрешены)
	Facts []OrderFactRow

	// Строки, исключённые на этапе трансформации
	Excluded []ExcludedRow
}
