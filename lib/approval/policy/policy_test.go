package approvalpolicy

import (
	"testing"

	"site-tools-backend/lib/apperrors"
	"site-tools-backend/models"

	"github.com/stretchr/testify/require"
)

func testPolicy(t *testing.T) Provider {
	NewHandler(DefaultTable())
	return Instance
}

func TestPolicy(t *testing.T) {
	t.Run("сумма в пределах лимита роли", func(t *testing.T) {
		policy := testPolicy(t)
		require.True(t, policy.CanApprove(models.ZoneManagerRole, models.CategoryGeneral, 800))
		require.False(t, policy.CanApprove(models.ZoneManagerRole, models.CategoryGeneral, 1500))
		require.True(t, policy.CanApprove(models.AreaManagerRole, models.CategoryGeneral, 1500))
	})

	t.Run("безлимит старшего уровня", func(t *testing.T) {
		policy := testPolicy(t)
		require.True(t, policy.CanApprove(models.PmoRole, models.CategorySubcontract, 10_000_000))
	})

	t.Run("минимальный достаточный уровень", func(t *testing.T) {
		policy := testPolicy(t)
		role, err := policy.RequiredLevel(models.CategoryGeneral, 800)
		require.Nil(t, err)
		require.Equal(t, models.ZoneManagerRole, role)

		role, err = policy.RequiredLevel(models.CategoryGeneral, 1500)
		require.Nil(t, err)
		require.Equal(t, models.SiteManagerRole, role)

		role, err = policy.RequiredLevel(models.CategoryGeneral, 4500)
		require.Nil(t, err)
		require.Equal(t, models.ProjectManagerRole, role)

		role, err = policy.RequiredLevel(models.CategoryGeneral, 100_000)
		require.Nil(t, err)
		require.Equal(t, models.PmoRole, role)
	})

	t.Run("эскалация при превышении лимита", func(t *testing.T) {
		policy := testPolicy(t)
		require.False(t, policy.ShouldEscalate(models.ZoneManagerRole, models.CategoryGeneral, 800))
		require.True(t, policy.ShouldEscalate(models.ZoneManagerRole, models.CategoryGeneral, 1500))
	})

	t.Run("роль вне таблицы не согласует ничего", func(t *testing.T) {
		policy := testPolicy(t)
		require.False(t, policy.CanApprove(models.UserRole("UNKNOWN"), models.CategoryGeneral, 1))
	})

	t.Run("сводная проверка", func(t *testing.T) {
		policy := testPolicy(t)
		view, err := policy.Check(models.ZoneManagerRole, models.CategoryGeneral, 1500)
		require.Nil(t, err)
		require.False(t, view.CanApprove)
		require.True(t, view.ShouldEscalate)
		require.Equal(t, models.SiteManagerRole, view.RequiredRole)
	})
}

func TestTableValidation(t *testing.T) {
	t.Run("немонотонная таблица отклоняется", func(t *testing.T) {
		_, err := NewTable([]Level{
			{Role: models.ZoneManagerRole, Default: models.LimitOf(5000)},
			{Role: models.SiteManagerRole, Default: models.LimitOf(3000)},
			{Role: models.PmoRole, Default: models.Unlimited()},
		})
		require.NotNil(t, err)
	})

	t.Run("старший уровень обязан быть безлимитным", func(t *testing.T) {
		_, err := NewTable([]Level{
			{Role: models.ZoneManagerRole, Default: models.LimitOf(1000)},
			{Role: models.PmoRole, Default: models.LimitOf(100_000)},
		})
		require.NotNil(t, err)
	})

	t.Run("переопределение по категории учитывается в монотонности", func(t *testing.T) {
		_, err := NewTable([]Level{
			{Role: models.ZoneManagerRole, Default: models.LimitOf(1000)},
			{
				Role:    models.SiteManagerRole,
				Default: models.LimitOf(3000),
				ByCategory: map[models.ApprovalCategory]models.Limit{
					models.CategorySubcontract: models.LimitOf(500),
				},
			},
			{Role: models.PmoRole, Default: models.Unlimited()},
		})
		require.NotNil(t, err)
	})

	t.Run("сумма выше всех лимитов без безлимита", func(t *testing.T) {
		table, err := NewTable([]Level{
			{Role: models.ZoneManagerRole, Default: models.LimitOf(1000)},
			{Role: models.PmoRole, Default: models.Unlimited()},
		})
		require.Nil(t, err)
		NewHandler(table)
		role, err := Instance.RequiredLevel(models.CategoryGeneral, 5000)
		require.Nil(t, err)
		require.Equal(t, models.PmoRole, role)
	})
}

func TestLimit(t *testing.T) {
	t.Run("сравнение с безлимитом", func(t *testing.T) {
		require.True(t, models.Unlimited().AtLeast(models.LimitOf(1_000_000)))
		require.False(t, models.LimitOf(1_000_000).AtLeast(models.Unlimited()))
		require.True(t, models.Unlimited().AtLeast(models.Unlimited()))
	})

	t.Run("граница лимита включительно", func(t *testing.T) {
		require.True(t, models.LimitOf(1000).Allows(1000))
		require.False(t, models.LimitOf(1000).Allows(1001))
	})
}

func TestPolicyErrors(t *testing.T) {
	t.Run("ошибка политики классифицируется как InvalidState", func(t *testing.T) {
		table := impl{table: Table{levels: []Level{
			{Role: models.ZoneManagerRole, Default: models.LimitOf(1000)},
		}}}
		_, err := table.RequiredLevel(models.CategoryGeneral, 5000)
		require.True(t, apperrors.IsInvalidState(err))
	})
}
