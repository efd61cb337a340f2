package models

import "fmt"

// Limit — лимит суммы согласования для роли. Безлимит задаётся явным
// вариантом, а не числом-заглушкой: сравнение с безлимитом всегда истинно.
type Limit struct {
	amount    int64
	unlimited bool
}

func LimitOf(amount int64) Limit {
	return Limit{amount: amount}
}

func Unlimited() Limit {
	return Limit{unlimited: true}
}

func (l Limit) IsUnlimited() bool {
	return l.unlimited
}

// Allows сообщает, укладывается ли сумма в лимит
func (l Limit) Allows(amount int64) bool {
	if l.unlimited {
		return true
	}
	return amount <= l.amount
}

// AtLeast: текущий лимит не ниже лимита other
func (l Limit) AtLeast(other Limit) bool {
	if l.unlimited {
		return true
	}
	if other.unlimited {
		return false
	}
	return l.amount >= other.amount
}

func (l Limit) String() string {
	if l.unlimited {
		return "без ограничений"
	}
	return fmt.Sprintf("%d", l.amount)
}
