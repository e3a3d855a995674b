package rental

import (
	"time"

	"github.com/shopspring/decimal"
)

var (
	secondsPerDay = decimal.NewFromInt(86400)

	// Надбавка 10% за возврат в другой локации.
	oneWayMultiplier = decimal.RequireFromString("1.1")
)

// Price считает итоговую стоимость аренды.
//
// Длительность в сутках — точное десятичное значение (секунды / 86400),
// без прохода через float и без промежуточных округлений. Итог округляется
// до 2 знаков только в конце — это точность хранения NUMERIC(10,2).
//
// Цена считается один раз за жизнь бронирования: после сохранения она не
// пересчитывается, даже если тариф автомобиля изменился.
func Price(start, end time.Time, dailyRate decimal.Decimal, oneWay bool) decimal.Decimal {
	seconds := decimal.NewFromInt(int64(end.Sub(start) / time.Second))
	days := seconds.Div(secondsPerDay)

	total := days.Mul(dailyRate)
	if oneWay {
		total = total.Mul(oneWayMultiplier)
	}

	return total.Round(2)
}
