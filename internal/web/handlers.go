package web

import (
	"embed"
	"errors"
	"io/fs"
	"net/http"
	"strconv"

	"go-ipconf/internal/config"
	"go-ipconf/internal/db"
	"go-ipconf/internal/export"
	"go-ipconf/internal/logger"
	"go-ipconf/internal/metrics"
	"go-ipconf/internal/models"
	"go-ipconf/internal/parser"
	"go-ipconf/internal/poller"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/template/html/v2"
	"go.uber.org/zap"
)

const (
	msgNothingFound = "No interfaces with IP addresses found!"
	msgNothingSaved = "Nothing to save!"
)

//go:embed templates/*.html
var templateFS embed.FS

var validate = validator.New()

type parseRequest struct {
	Config string `form:"config" json:"config" validate:"required,max=4194304"`
}

type deviceRequest struct {
	Name      string `form:"name" validate:"required,max=64"`
	IPAddress string `form:"ip" validate:"required,ip"`
	Community string `form:"community" validate:"required"`
	Port      string `form:"port" validate:"omitempty,number"`
}

type parseResponse struct {
	Report  string           `json:"report"`
	Found   bool             `json:"found"`
	Devices []*parser.Device `json:"devices"`
}

// NewEngine loads the embedded page templates.
func NewEngine() *html.Engine {
	sub, err := fs.Sub(templateFS, "templates")
	if err != nil {
		panic(err)
	}
	engine := html.NewFileSystem(http.FS(sub), ".html")
	engine.AddFunc("orNone", export.OrNone)
	return engine
}

func sendText(c *fiber.Ctx, res *parser.Result) error {
	if res.Empty() {
		return fiber.NewError(fiber.StatusNotFound, msgNothingSaved)
	}
	c.Attachment(export.Filename)
	c.Set(fiber.HeaderContentType, export.ContentType)
	return c.SendString(export.Text(res))
}

func bindConfig(c *fiber.Ctx) (string, error) {
	var req parseRequest
	if err := c.BodyParser(&req); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Malformed request body.")
	}
	if err := validate.Struct(req); err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Paste a configuration first.")
	}
	return req.Config, nil
}

// extract parses the text, records metrics and stores the report.
func extract(source, text string) (*parser.Result, *models.Report, error) {
	res := parser.Extract(text)
	metrics.Observe(source, res)
	rep, err := db.SaveReport(source, text, res)
	if err != nil {
		return nil, nil, err
	}
	logger.Logger.Info("Parsed configuration",
		zap.String("report", rep.UUID),
		zap.Int("lines", res.Lines),
		zap.Int("devices", len(res.Devices)),
		zap.Int("interfaces", res.InterfaceCount()))
	return res, rep, nil
}

func loadReport(c *fiber.Ctx) (*models.Report, error) {
	rep, err := db.GetReport(c.Params("uuid"))
	if errors.Is(err, db.ErrNotFound) {
		return nil, fiber.NewError(fiber.StatusNotFound, "Report not found.")
	}
	return rep, err
}

func renderResult(c *fiber.Ctx, input string, res *parser.Result, rep *models.Report) error {
	return c.Render("index", fiber.Map{
		"Input":   input,
		"Result":  res,
		"Report":  rep,
		"Message": msgNothingFound,
	})
}

func SetupRoutes(app *fiber.App, snmp config.SNMPConfig) {
	app.Use(RequestLogger())

	app.Get("/", func(c *fiber.Ctx) error {
		return c.Render("index", fiber.Map{"Input": ""})
	})

	app.Post("/", func(c *fiber.Ctx) error {
		text, err := bindConfig(c)
		if err != nil {
			c.Status(fiber.StatusBadRequest)
			return c.Render("index", fiber.Map{"Input": "", "Error": err.Error()})
		}
		res, rep, err := extract("paste", text)
		if err != nil {
			return err
		}
		return renderResult(c, text, res, rep)
	})

	// Parse and download in one step, nothing stored
	app.Post("/export", func(c *fiber.Ctx) error {
		text, err := bindConfig(c)
		if err != nil {
			return err
		}
		res := parser.Extract(text)
		metrics.Observe("export", res)
		return sendText(c, res)
	})

	app.Post("/api/parse", func(c *fiber.Ctx) error {
		text, err := bindConfig(c)
		if err != nil {
			return err
		}
		res, rep, err := extract("api", text)
		if err != nil {
			return err
		}
		return c.JSON(parseResponse{Report: rep.UUID, Found: !res.Empty(), Devices: res.Devices})
	})

	// Report history
	app.Get("/reports", func(c *fiber.Ctx) error {
		reports, err := db.ListReports(50)
		if err != nil {
			return err
		}
		return c.Render("reports", fiber.Map{"Reports": reports})
	})

	app.Get("/reports/:uuid", func(c *fiber.Ctx) error {
		rep, err := loadReport(c)
		if err != nil {
			return err
		}
		return renderResult(c, rep.Input, db.ReportResult(rep), rep)
	})

	app.Get("/reports/:uuid/export", func(c *fiber.Ctx) error {
		rep, err := loadReport(c)
		if err != nil {
			return err
		}
		return sendText(c, db.ReportResult(rep))
	})

	// SNMP devices
	app.Get("/devices", func(c *fiber.Ctx) error {
		devices, err := db.ListDevices()
		if err != nil {
			return err
		}
		return c.Render("devices", fiber.Map{"Devices": devices})
	})

	app.Post("/devices/add", func(c *fiber.Ctx) error {
		var req deviceRequest
		if err := c.BodyParser(&req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Malformed request body.")
		}
		if err := validate.Struct(req); err != nil {
			return fiber.NewError(fiber.StatusBadRequest, "Name, a valid IP address and community are required.")
		}
		dev := models.Device{Name: req.Name, IPAddress: req.IPAddress, Community: req.Community}
		if req.Port != "" {
			port, err := strconv.ParseUint(req.Port, 10, 16)
			if err != nil || port == 0 {
				return fiber.NewError(fiber.StatusBadRequest, "Port must be between 1 and 65535.")
			}
			dev.Port = uint16(port)
		}
		if err := db.CreateDevice(&dev); err != nil {
			return err
		}
		return c.Redirect("/devices")
	})

	app.Post("/devices/delete/:id", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid device id.")
		}
		if err := db.DeleteDevice(uint(id)); err != nil {
			return err
		}
		return c.Redirect("/devices")
	})

	app.Post("/devices/:id/collect", func(c *fiber.Ctx) error {
		id, err := c.ParamsInt("id")
		if err != nil || id < 1 {
			return fiber.NewError(fiber.StatusBadRequest, "Invalid device id.")
		}
		dev, err := db.GetDevice(uint(id))
		if errors.Is(err, db.ErrNotFound) {
			return fiber.NewError(fiber.StatusNotFound, "Device not found.")
		}
		if err != nil {
			return err
		}
		rep, err := poller.PollDevice(*dev, snmp)
		if err != nil {
			logger.Logger.Warn("Collection failed", zap.String("device", dev.Name), zap.Error(err))
			return fiber.NewError(fiber.StatusBadGateway, "SNMP collection failed: "+err.Error())
		}
		return c.Redirect("/reports/" + rep.UUID)
	})

	app.Get("/metrics", adaptor.HTTPHandler(metrics.Handler()))
}
