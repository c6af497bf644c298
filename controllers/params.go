package controllers

import (
	"strconv"

	"foodorder/pkg/resp"
	"foodorder/utils"

	"github.com/gin-gonic/gin"
)

// pathID reads a numeric path parameter, writing 400 when it is malformed.
func pathID(c *gin.Context, name string) (uint, bool) {
	id, ok := utils.ParamUint(c, name)
	if !ok {
		resp.BadRequest(c, "invalid "+name)
	}
	return id, ok
}

// queryInt reads an optional integer query parameter. def applies only when
// the parameter is absent; anything unparsable is a 400.
func queryInt(c *gin.Context, name string, def int) (int, bool) {
	raw, present := c.GetQuery(name)
	if !present {
		return def, true
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		resp.BadRequest(c, "invalid "+name)
		return 0, false
	}
	return v, true
}
