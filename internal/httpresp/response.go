package httpresp

import "github.com/gin-gonic/gin"

// Envelope is the success body: {"status":"success","data":...}.
type Envelope struct {
	Status string `json:"status"`
	Data   any    `json:"data"`
}

type ListEnvelope struct {
	Status     string      `json:"status"`
	Results    int         `json:"results"`
	Pagination *Pagination `json:"pagination,omitempty"`
	Data       any         `json:"data"`
}

func OK(c *gin.Context, data any) {
	c.JSON(200, Envelope{Status: "success", Data: data})
}

func Created(c *gin.Context, data any) {
	c.JSON(201, Envelope{Status: "success", Data: data})
}

func List(c *gin.Context, results int, data any) {
	c.JSON(200, ListEnvelope{Status: "success", Results: results, Data: data})
}

func Paginated(c *gin.Context, results int, p Pagination, data any) {
	c.JSON(200, ListEnvelope{Status: "success", Results: results, Pagination: &p, Data: data})
}
