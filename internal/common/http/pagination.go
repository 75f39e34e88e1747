package http

import "github.com/labstack/echo/v4"

const (
	queryNextCursor = "nextCursor"
	queryPrevCursor = "prevCursor"
)

type CursorPagination struct {
	Prev string `json:"prev" example:"abc"`
	Next string `json:"next" example:"cba"`
}

// PaginateableContent is a row that can be listed page by page and rendered as ModelOut.
type PaginateableContent[ModelOut any] interface {
	GetCursor() string
	ToModelResponse() ModelOut
}

type pageDirection int

const (
	pageFirst pageDirection = iota
	pageForward
	pageBackward
)

// directionOf prefers nextCursor when a request carries both.
func directionOf(c echo.Context) pageDirection {
	switch {
	case c.QueryParam(queryNextCursor) != "":
		return pageForward
	case c.QueryParam(queryPrevCursor) != "":
		return pageBackward
	default:
		return pageFirst
	}
}

// NewCursorPagination builds the cursors around rows, already in display order.
// Moving backward always leaves a next page; moving forward always leaves a previous one.
func NewCursorPagination[ModelOut any, S ~[]E, E PaginateableContent[ModelOut]](c echo.Context, rows S, hasMorePages bool) CursorPagination {
	var p CursorPagination
	if len(rows) == 0 {
		return p
	}

	dir := directionOf(c)
	first, last := rows[0].GetCursor(), rows[len(rows)-1].GetCursor()

	switch dir {
	case pageForward:
		p.Prev = first
		if hasMorePages {
			p.Next = last
		}
	case pageBackward:
		p.Next = last
		if hasMorePages {
			p.Prev = first
		}
	default:
		if hasMorePages {
			p.Next = last
		}
	}
	return p
}
