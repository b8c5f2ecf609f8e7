package valuation

import (
	"github.com/shopspring/decimal"

	"carprice-system/internal/apperror"
)

// Фиксированные бизнес-ставки. Меняются только новым релизом.
var (
	ageRate       = decimal.RequireFromString("0.005") // 0.5% за месяц возраста
	mileageRate   = decimal.RequireFromString("0.002") // 0.2% за блок в 1000 миль
	collisionRate = decimal.RequireFromString("0.02")  // 2% за аварию
	ownersRate    = decimal.RequireFromString("0.25")  // разовое снижение при >2 владельцах
	noOwnersBonus = decimal.RequireFromString("0.10")  // надбавка за отсутствие владельцев
)

const (
	maxAgeUnits       = 120
	milesPerUnit      = 1000
	maxMileageUnits   = 150
	maxCollisionUnits = 5
	ownersThreshold   = 2
)

// CarInput описывает машину, которую нужно оценить. Все поля обязаны
// быть неотрицательными.
type CarInput struct {
	PurchaseValue          decimal.Decimal
	AgeInMonths            int
	NumberOfMiles          int
	NumberOfPreviousOwners int
	NumberOfCollisions     int
}

// Validate проверяет входные данные. Отрицательное поле — ошибка
// вида invalid_input.
func (c CarInput) Validate() error {
	if c.PurchaseValue.IsNegative() {
		return apperror.InvalidInput("purchase value must not be negative", nil)
	}
	if c.AgeInMonths < 0 {
		return apperror.InvalidInput("age in months must not be negative", nil)
	}
	if c.NumberOfMiles < 0 {
		return apperror.InvalidInput("number of miles must not be negative", nil)
	}
	if c.NumberOfPreviousOwners < 0 {
		return apperror.InvalidInput("number of previous owners must not be negative", nil)
	}
	if c.NumberOfCollisions < 0 {
		return apperror.InvalidInput("number of collisions must not be negative", nil)
	}
	return nil
}

// DeterminePrice считает цену перепродажи. Шаги идут строго по порядку:
// возраст, пробег, аварии, затем поправка за владельцев. Каждый шаг
// снимает процент от текущей цены единым списанием, без сложного
// процента. Результат не округляется.
func DeterminePrice(car CarInput) (decimal.Decimal, error) {
	if err := car.Validate(); err != nil {
		return decimal.Decimal{}, err
	}

	value := car.PurchaseValue
	value = flatReduction(value, ageRate, car.AgeInMonths, maxAgeUnits)
	value = flatReduction(value, mileageRate, car.NumberOfMiles/milesPerUnit, maxMileageUnits)
	value = flatReduction(value, collisionRate, car.NumberOfCollisions, maxCollisionUnits)
	value = ownerAdjustment(value, car.NumberOfPreviousOwners)

	return value, nil
}

// DeterminePriceCompounded — альтернативный расчёт, в котором каждая
// единица снижает уже уменьшенную базу. Порядок шагов и поправка за
// владельцев те же. Основным расчётом остаётся DeterminePrice.
func DeterminePriceCompounded(car CarInput) (decimal.Decimal, error) {
	if err := car.Validate(); err != nil {
		return decimal.Decimal{}, err
	}

	value := car.PurchaseValue
	value = compoundedReduction(value, ageRate, car.AgeInMonths, maxAgeUnits)
	value = compoundedReduction(value, mileageRate, car.NumberOfMiles/milesPerUnit, maxMileageUnits)
	value = compoundedReduction(value, collisionRate, car.NumberOfCollisions, maxCollisionUnits)
	value = ownerAdjustment(value, car.NumberOfPreviousOwners)

	return value, nil
}

// flatReduction снимает rate за каждую единицу от одной и той же базы.
// Единицы сверх maxUnits не учитываются.
func flatReduction(value, rate decimal.Decimal, units, maxUnits int) decimal.Decimal {
	if units > maxUnits {
		units = maxUnits
	}
	if units <= 0 {
		return value
	}

	reduction := value.Mul(rate).Mul(decimal.NewFromInt(int64(units)))
	return value.Sub(reduction)
}

// compoundedReduction применяет rate последовательно к убывающей базе.
func compoundedReduction(value, rate decimal.Decimal, units, maxUnits int) decimal.Decimal {
	if units > maxUnits {
		units = maxUnits
	}
	if units <= 0 {
		return value
	}

	factor := decimal.NewFromInt(1).Sub(rate)
	for i := 0; i < units; i++ {
		value = value.Mul(factor)
	}
	return value
}

// ownerAdjustment применяет ровно одну из двух веток: снижение за
// больше чем двух владельцев либо надбавку за их отсутствие.
func ownerAdjustment(value decimal.Decimal, owners int) decimal.Decimal {
	switch {
	case owners > ownersThreshold:
		return value.Sub(value.Mul(ownersRate))
	case owners == 0:
		return value.Add(value.Mul(noOwnersBonus))
	default:
		return value
	}
}
