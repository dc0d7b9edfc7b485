package handler

import (
	"context"
	"mime/multipart"
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// uploadField is the multipart field every upload endpoint reads.
const uploadField = "file"

func listHandler[T any](fn func(context.Context) ([]T, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		res, err := fn(c.UserContext())
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

func createHandler[In, Out any](fn func(context.Context, In) (Out, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		var in In
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		res, err := fn(c.UserContext(), in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.Status(fiber.StatusCreated).JSON(res)
	}
}

func updateHandler[In, Out any](fn func(context.Context, int64, In) (Out, error)) fiber.Handler {
	return func(c *fiber.Ctx) error {
		id, ok := paramID(c)
		if !ok {
			return invalidID(c)
		}
		var in In
		if err := c.BodyParser(&in); err != nil {
			return invalidBody(c)
		}
		res, err := fn(c.UserContext(), id, in)
		if err != nil {
			return serviceError(c, err)
		}
		return c.JSON(res)
	}
}

// paramID reads the positive integer :id route parameter.
func paramID(c *fiber.Ctx) (int64, bool) {
	id, err := strconv.ParseInt(c.Params("id"), 10, 64)
	return id, err == nil && id > 0
}

func invalidID(c *fiber.Ctx) error {
	return writeError(c, fiber.StatusBadRequest, "INVALID_ID", "invalid id format")
}

// withUpload opens the uploaded file, passes it to fn and closes it afterwards.
func withUpload(c *fiber.Ctx, fn func(fh *multipart.FileHeader, f multipart.File) error) error {
	fh, err := c.FormFile(uploadField)
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_REQUIRED", "file is required")
	}
	f, err := fh.Open()
	if err != nil {
		return writeError(c, fiber.StatusBadRequest, "FILE_OPEN_ERROR", "cannot open uploaded file")
	}
	defer f.Close()
	return fn(fh, f)
}
