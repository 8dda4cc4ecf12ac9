package listingsrs

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/google/uuid"
	"github.com/momeni/carhub/pkg/adapter/restful/gin/serdser"
	"github.com/momeni/carhub/pkg/core/model"
)

type rawPageReq struct {
	Page  string `form:"page" binding:"omitempty,number"`
	Limit string `form:"limit" binding:"omitempty,number"`
}

type rawSearchReq struct {
	Page  string `form:"page" binding:"omitempty,number"`
	Limit string `form:"limit" binding:"omitempty,number"`

	Query string `form:"query" binding:"omitempty,max=200"`

	MinPrice   string `form:"minPrice" binding:"omitempty,numeric"`
	MaxPrice   string `form:"maxPrice" binding:"omitempty,numeric"`
	MinYear    string `form:"minYear" binding:"omitempty,number"`
	MaxYear    string `form:"maxYear" binding:"omitempty,number"`
	MinMileage string `form:"minMileage" binding:"omitempty,number"`
	MaxMileage string `form:"maxMileage" binding:"omitempty,number"`

	FuelType     string `form:"fuelType"`
	Transmission string `form:"transmission"`
	BodyType     string `form:"bodyType"`
	Make         string `form:"make"`
}

type rawGetReq struct {
	ID string `uri:"id" binding:"required,uuid"`
}

func (rs *resource) DserSearchReq(c *gin.Context) *model.Filter {
	req := &rawSearchReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	var errs map[string][]string
	f := &model.Filter{
		Query:        req.Query,
		FuelType:     req.FuelType,
		Transmission: req.Transmission,
		BodyType:     req.BodyType,
		Make:         req.Make,
	}
	parsePage(&errs, f, req.Page, req.Limit)
	f.Price.Min = parseBound(&errs, "minPrice", req.MinPrice, parseFloat)
	f.Price.Max = parseBound(&errs, "maxPrice", req.MaxPrice, parseFloat)
	f.Year.Min = parseBound(&errs, "minYear", req.MinYear, strconv.Atoi)
	f.Year.Max = parseBound(&errs, "maxYear", req.MaxYear, strconv.Atoi)
	f.Mileage.Min = parseBound(
		&errs, "minMileage", req.MinMileage, strconv.Atoi,
	)
	f.Mileage.Max = parseBound(
		&errs, "maxMileage", req.MaxMileage, strconv.Atoi,
	)
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return f
}

func (rs *resource) DserListReq(c *gin.Context) *model.Filter {
	req := &rawPageReq{}
	if ok := serdser.Bind(c, req, binding.Query); !ok {
		return nil
	}
	var errs map[string][]string
	f := &model.Filter{}
	parsePage(&errs, f, req.Page, req.Limit)
	if errs != nil {
		c.JSON(http.StatusBadRequest, errs)
		return nil
	}
	return f
}

func (rs *resource) DserGetReq(c *gin.Context) *uuid.UUID {
	req := &rawGetReq{}
	if ok := serdser.Bind(c, req, binding.Uri); !ok {
		return nil
	}
	id, err := uuid.Parse(req.ID)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"id": []string{"Path param id is not UUID."},
		})
		return nil
	}
	return &id
}

// parsePage fills the page and limit of f. Zero values are kept, so
// the use case may replace them with its defaults.
func parsePage(
	errs *map[string][]string, f *model.Filter, page, limit string,
) {
	if p := parseBound(errs, "page", page, strconv.Atoi); p != nil {
		f.Page = *p
	}
	if l := parseBound(errs, "limit", limit, strconv.Atoi); l != nil {
		f.Limit = *l
	}
}

func parseFloat(s string) (float64, error) {
	return strconv.ParseFloat(s, 64)
}

// parseBound returns nil for an empty s, so an absent query param
// imposes no constraint.
func parseBound[T any](
	errs *map[string][]string,
	name, s string,
	parse func(string) (T, error),
) *T {
	if s == "" {
		return nil
	}
	v, err := parse(s)
	if !serdser.Assert(errs, err == nil, name, "Query param "+name+" is not a valid number.") {
		return nil
	}
	return &v
}
