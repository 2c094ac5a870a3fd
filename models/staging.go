package models

// UserStaging представляет запись пользователя в staging-области
// Все поля хранятся как текст: приведение типов выполняется в фазе Transform
type UserStaging struct {
	UserID        string
	Name          string
	Email         string
	Age           string
	Gender        string
	MaritalStatus string
	Occupation    string
	MonthlyIncome string
	Education     string
	FamilySize    string
}

// RestaurantStaging представляет запись ресторана в staging-области
type RestaurantStaging struct {
	RestaurantID string
	Name         string
	City         string
	Rating       string
	Cuisines     string
}

// OrderStaging представляет запись заказа в staging-области
// ID — технический ключ staging-таблицы, используется как водяной знак
// инкрементального извлечения
type OrderStaging struct {
	ID           int
	UserID       string
	RestaurantID string
	OrderDate    string
	Quantity     string
	Amount       string
	Currency     string
}

// LocationStaging представляет запись локации в staging-области
type LocationStaging struct {
	Country string
	State   string
	City    string
}

// ExtractedData содержит данные, извлечённые из staging-области
type ExtractedData struct {
	Users       []UserStaging
	Restaurants []RestaurantStaging
	Orders      []OrderStaging
	Locations   []LocationStaging

	// LastOrderID — максимальный ID заказа в этой выборке,
	// становится водяным знаком следующего запуска
	LastOrderID int
}
