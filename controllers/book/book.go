package bookController

import (
	"paperscan/database"
	"paperscan/middleware"
	"paperscan/models"

	"github.com/gofiber/fiber/v2"
)

// CreateBook creates a new book
func CreateBook(c *fiber.Ctx) error {
	reqData := new(struct {
		Title   string `json:"title"`
		Author  string `json:"author"`
		Subject string `json:"subject"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	book := models.Book{
		Title:   reqData.Title,
		Author:  reqData.Author,
		Subject: reqData.Subject,
	}
	if err := database.Database.Db.Create(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create book!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book created!", book)
}

// ListBooks lists all books
func ListBooks(c *fiber.Ctx) error {
	var books []models.Book
	if err := database.Database.Db.Where("is_deleted = false").
		Order("created_at DESC").Find(&books).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to fetch books!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Books fetched!", books)
}

// GetBook returns one book with its chapters
func GetBook(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid book ID!", nil)
	}

	var book models.Book
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", bookID).First(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
	}

	var chapters []models.Chapter
	database.Database.Db.Where("book_id = ? AND is_deleted = false", bookID).
		Order("order_index ASC").Find(&chapters)

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book fetched!", fiber.Map{
		"book":     book,
		"chapters": chapters,
	})
}

// UpdateBook updates book metadata
func UpdateBook(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid book ID!", nil)
	}

	var book models.Book
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", bookID).First(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
	}

	reqData := new(struct {
		Title   string `json:"title"`
		Author  string `json:"author"`
		Subject string `json:"subject"`
		Status  string `json:"status"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		book.Title = reqData.Title
	}
	if reqData.Author != "" {
		book.Author = reqData.Author
	}
	if reqData.Subject != "" {
		book.Subject = reqData.Subject
	}
	if reqData.Status != "" {
		book.Status = reqData.Status
	}

	if err := database.Database.Db.Save(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update book!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book updated!", book)
}

// DeleteBook soft deletes a book
func DeleteBook(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid book ID!", nil)
	}

	var book models.Book
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", bookID).First(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
	}

	book.IsDeleted = true
	if err := database.Database.Db.Save(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete book!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Book deleted!", nil)
}

// CreateChapter adds a chapter to a book
func CreateChapter(c *fiber.Ctx) error {
	bookID, err := c.ParamsInt("id")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid book ID!", nil)
	}

	var book models.Book
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", bookID).First(&book).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Book not found!", nil)
	}

	reqData := new(struct {
		Title      string `json:"title"`
		Number     int    `json:"number"`
		OrderIndex int    `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	chapter := models.Chapter{
		BookID:     uint(bookID),
		Title:      reqData.Title,
		Number:     reqData.Number,
		OrderIndex: reqData.OrderIndex,
	}
	if err := database.Database.Db.Create(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to create chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter created!", chapter)
}

// UpdateChapter updates chapter metadata
func UpdateChapter(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("chapterId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter ID!", nil)
	}

	var chapter models.Chapter
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	reqData := new(struct {
		Title      string `json:"title"`
		Number     *int   `json:"number"`
		OrderIndex *int   `json:"order_index"`
	})
	if err := c.BodyParser(reqData); err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid request body!", nil)
	}

	if reqData.Title != "" {
		chapter.Title = reqData.Title
	}
	if reqData.Number != nil {
		chapter.Number = *reqData.Number
	}
	if reqData.OrderIndex != nil {
		chapter.OrderIndex = *reqData.OrderIndex
	}

	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to update chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter updated!", chapter)
}

// DeleteChapter soft deletes a chapter
func DeleteChapter(c *fiber.Ctx) error {
	chapterID, err := c.ParamsInt("chapterId")
	if err != nil {
		return middleware.JsonResponse(c, fiber.StatusBadRequest, false, "Invalid chapter ID!", nil)
	}

	var chapter models.Chapter
	if err := database.Database.Db.Where("id = ? AND is_deleted = false", chapterID).First(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusNotFound, false, "Chapter not found!", nil)
	}

	chapter.IsDeleted = true
	if err := database.Database.Db.Save(&chapter).Error; err != nil {
		return middleware.JsonResponse(c, fiber.StatusInternalServerError, false, "Failed to delete chapter!", nil)
	}

	return middleware.JsonResponse(c, fiber.StatusOK, true, "Chapter deleted!", nil)
}
