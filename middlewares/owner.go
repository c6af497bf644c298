package middlewares

import (
	"context"

	"foodorder/pkg/resp"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

// OwnershipChecker answers whether userID owns restaurant restID.
type OwnershipChecker interface {
	IsOwnedBy(ctx context.Context, restID, userID uint) (bool, error)
}

// RestaurantOwner rejects the request unless the caller owns the restaurant
// named by path parameter param. Must run after AuthMiddleware.
func RestaurantOwner(checker OwnershipChecker, param string) gin.HandlerFunc {
	return func(c *gin.Context) {
		restID, ok := utils.ParamUint(c, param)
		if !ok {
			resp.BadRequest(c, "invalid restaurant id")
			c.Abort()
			return
		}
		owned, err := checker.IsOwnedBy(c.Request.Context(), restID, utils.CurrentUserID(c))
		if err != nil {
			resp.Fail(c, err)
			c.Abort()
			return
		}
		if !owned {
			resp.Forbidden(c, "you do not own this restaurant")
			c.Abort()
			return
		}
		c.Next()
	}
}
