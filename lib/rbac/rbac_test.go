package rbac

import (
	"testing"

	"site-tools-backend/models"

	"github.com/stretchr/testify/require"
)

func TestRbac(t *testing.T) {
	t.Run(`pathToRegex check`, func(t *testing.T) {
		path, method, err := parseSwaggerPattern("/api/v1/space/approval_request/{id}/approve [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r1 := pathToRegex(path)

		validUri := "/api/v1/space/approval_request/123-321/approve"
		isMatch := r1.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri := "/api/v1/space/approval_request/approve"
		isMatch = r1.MatchString(invalidUri)
		require.Equal(t, false, isMatch)

		path, method, err = parseSwaggerPattern("/api/v1/space/users/{id}/assignment/{org_unit_id} [put]")
		require.Nil(t, err)
		require.Equal(t, PUT, method)
		r2 := pathToRegex(path)

		validUri = "/api/v1/space/users/123-321/assignment/qwe-ewr123-wr-12"
		isMatch = r2.MatchString(validUri)
		require.Equal(t, true, isMatch)

		invalidUri = "/api/v1/space/users/we-ewr123-wr-12/assignment"
		isMatch = r2.MatchString(invalidUri)
		require.Equal(t, false, isMatch)
	})

	t.Run("rule lookup", func(t *testing.T) {
		NewHandler()
		ruleFn, found := Instance.GetRuleFunc("PUT", "/api/v1/space/approval_request/123/approve")
		require.True(t, found)
		require.True(t, ruleFn("space1", "u1", models.FinanceManagerRole, "/api/v1/space/approval_request/123/approve"))
		require.False(t, ruleFn("space1", "u1", models.ZoneManagerRole, "/api/v1/space/approval_request/123/approve"))

		_, found = Instance.GetRuleFunc("DELETE", "/api/v1/space/approval_request/123/approve")
		require.False(t, found)
	})
}

func TestCan(t *testing.T) {
	NewHandler()

	t.Run("разрешение из матрицы", func(t *testing.T) {
		require.True(t, Instance.Can(models.FinanceManagerRole, models.ApprovalRequestResource, models.DecideAction))
		require.True(t, Instance.Can(models.ZoneManagerRole, models.ApprovalRequestResource, models.CreateAction))
	})

	t.Run("отсутствующее разрешение — отказ", func(t *testing.T) {
		require.False(t, Instance.Can(models.ZoneManagerRole, models.ApprovalRequestResource, models.DecideAction))
		require.False(t, Instance.Can(models.FinanceManagerRole, models.OrgStructResource, models.ManageAction))
	})

	t.Run("роль уровня пространства", func(t *testing.T) {
		require.True(t, Instance.Can(models.SpaceAdminRole, models.OrgStructResource, models.ManageAction))
		require.True(t, Instance.Can(models.PmoRole, models.ApprovalRequestResource, models.DecideAction))
	})

	t.Run("неизвестные значения — отказ", func(t *testing.T) {
		require.False(t, Instance.Can(models.SpaceAdminRole, models.Resource("UNKNOWN"), models.ViewAction))
		require.False(t, Instance.Can(models.SpaceAdminRole, models.OrgStructResource, models.Action("UNKNOWN")))
		require.False(t, Instance.Can(models.UserRole("UNKNOWN"), models.OrgStructResource, models.ViewAction))
	})
}
