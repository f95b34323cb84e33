package handler

import (
	"strconv"

	"github.com/gin-gonic/gin"

	appbook "github.com/xiebiao/libros/internal/application/book"
	"github.com/xiebiao/libros/internal/interface/http/dto"
	"github.com/xiebiao/libros/pkg/response"
)

// 对外错误信息
const (
	msgListFailed   = "Error al obtener los libros"
	msgGetFailed    = "Error al obtener el libro"
	msgCreateFailed = "Error al crear el libro"
	msgUpdateFailed = "Error al actualizar el libro"
	msgDeleteFailed = "Error al eliminar el libro"
	msgSearchFailed = "Error al buscar libros"
	msgDeleted      = "Libro eliminado correctamente"
)

// BookHandler 图书HTTP处理器
type BookHandler struct {
	listBooksUseCase   *appbook.ListBooksUseCase
	getBookUseCase     *appbook.GetBookUseCase
	createBookUseCase  *appbook.CreateBookUseCase
	updateBookUseCase  *appbook.UpdateBookUseCase
	deleteBookUseCase  *appbook.DeleteBookUseCase
	searchBooksUseCase *appbook.SearchBooksUseCase
}

// NewBookHandler 创建图书处理器
func NewBookHandler(
	listBooksUseCase *appbook.ListBooksUseCase,
	getBookUseCase *appbook.GetBookUseCase,
	createBookUseCase *appbook.CreateBookUseCase,
	updateBookUseCase *appbook.UpdateBookUseCase,
	deleteBookUseCase *appbook.DeleteBookUseCase,
	searchBooksUseCase *appbook.SearchBooksUseCase,
) *BookHandler {
	return &BookHandler{
		listBooksUseCase:   listBooksUseCase,
		getBookUseCase:     getBookUseCase,
		createBookUseCase:  createBookUseCase,
		updateBookUseCase:  updateBookUseCase,
		deleteBookUseCase:  deleteBookUseCase,
		searchBooksUseCase: searchBooksUseCase,
	}
}

// ListBooks 图书列表
// @Summary      图书列表
// @Description  按ID升序返回全部图书,不分页
// @Tags         libros
// @Produce      json
// @Success      200 {array}  dto.BookResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /libros [get]
func (h *BookHandler) ListBooks(c *gin.Context) {
	books, err := h.listBooksUseCase.Execute(c.Request.Context())
	if err != nil {
		response.Error(c, err, msgListFailed)
		return
	}

	response.Success(c, dto.NewBookListResponse(books))
}

// GetBook 图书详情
// @Summary      图书详情
// @Tags         libros
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} dto.BookResponse
// @Failure      404 {object} response.ErrorResponse "Libro no encontrado"
// @Failure      500 {object} response.ErrorResponse
// @Router       /libros/{id} [get]
func (h *BookHandler) GetBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	b, err := h.getBookUseCase.Execute(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err, msgGetFailed)
		return
	}

	response.Success(c, dto.NewBookResponse(b))
}

// CreateBook 新增图书
// @Summary      新增图书
// @Description  id与created_at可选;ISBN重复或ID冲突返回400及details
// @Tags         libros
// @Accept       json
// @Produce      json
// @Param        request body dto.BookRequest true "图书信息"
// @Success      201 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorResponse "约束冲突"
// @Failure      400 {object} response.MessageResponse "Datos inválidos"
// @Router       /libros [post]
func (h *BookHandler) CreateBook(c *gin.Context) {
	// 1. 参数绑定与校验
	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c)
		return
	}

	// 2. 调用应用层用例
	b, err := h.createBookUseCase.Execute(c.Request.Context(), appbook.CreateBookRequest{
		ID:        req.IDOrZero(),
		Title:     req.Title,
		Author:    req.Author,
		ISBN:      req.ISBN,
		Category:  req.Category,
		Status:    req.Status,
		CreatedAt: req.CreatedAtOrZero(),
	})
	if err != nil {
		response.ErrorWithDetails(c, err, msgCreateFailed)
		return
	}

	response.Created(c, dto.NewBookResponse(b))
}

// UpdateBook 更新图书
// @Summary      更新图书
// @Description  全量覆盖;路径中的ID优先,请求体中的id被忽略
// @Tags         libros
// @Accept       json
// @Produce      json
// @Param        id      path int             true "图书ID"
// @Param        request body dto.BookRequest true "图书信息"
// @Success      200 {object} dto.BookResponse
// @Failure      400 {object} response.ErrorResponse
// @Failure      404 {object} response.ErrorResponse "Libro no encontrado"
// @Router       /libros/{id} [put]
func (h *BookHandler) UpdateBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	var req dto.BookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.InvalidParams(c)
		return
	}

	b, err := h.updateBookUseCase.Execute(c.Request.Context(), appbook.UpdateBookRequest{
		ID:        id,
		Title:     req.Title,
		Author:    req.Author,
		ISBN:      req.ISBN,
		Category:  req.Category,
		Status:    req.Status,
		CreatedAt: req.CreatedAtOrZero(),
	})
	if err != nil {
		response.ErrorWithDetails(c, err, msgUpdateFailed)
		return
	}

	response.Success(c, dto.NewBookResponse(b))
}

// DeleteBook 删除图书
// @Summary      删除图书
// @Tags         libros
// @Produce      json
// @Param        id path int true "图书ID"
// @Success      200 {object} response.MessageResponse
// @Failure      404 {object} response.ErrorResponse "Libro no encontrado"
// @Failure      500 {object} response.ErrorResponse
// @Router       /libros/{id} [delete]
func (h *BookHandler) DeleteBook(c *gin.Context) {
	id, ok := parseID(c)
	if !ok {
		return
	}

	if err := h.deleteBookUseCase.Execute(c.Request.Context(), id); err != nil {
		response.Error(c, err, msgDeleteFailed)
		return
	}

	response.Message(c, msgDeleted)
}

// SearchBooks 搜索图书
// @Summary      搜索图书
// @Description  书名/作者/分类子串匹配(ASCII不区分大小写),条件之间为AND,无条件时返回全部
// @Tags         libros
// @Produce      json
// @Param        titulo    query string false "书名包含"
// @Param        autor     query string false "作者包含"
// @Param        categoria query string false "分类包含"
// @Success      200 {array}  dto.BookResponse
// @Failure      500 {object} response.ErrorResponse
// @Router       /libros/buscar [get]
func (h *BookHandler) SearchBooks(c *gin.Context) {
	var req dto.SearchBooksRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.InvalidParams(c)
		return
	}

	books, err := h.searchBooksUseCase.Execute(c.Request.Context(), appbook.SearchBooksRequest{
		Title:    req.Title,
		Author:   req.Author,
		Category: req.Category,
	})
	if err != nil {
		response.Error(c, err, msgSearchFailed)
		return
	}

	response.Success(c, dto.NewBookListResponse(books))
}

// parseID 解析路径中的图书ID
// 非正整数的ID不可能对应任何图书,直接返回404
func parseID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 63)
	if err != nil || id == 0 {
		response.NotFound(c)
		return 0, false
	}
	return uint(id), true
}
