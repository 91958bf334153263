package handlers

import (
	"errors"
	"fmt"
	"net/url"
	"strconv"
	"time"

	config "github.com/anjiri1684/omnilearn/configs"
	"github.com/anjiri1684/omnilearn/database"
	"github.com/anjiri1684/omnilearn/services"
	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/gofiber/fiber/v2"
)

const courseMediaFolder = "omnilearn_courses"

const cloudinaryUploadBase = "https://api.cloudinary.com/v1_1"

var errCloudinaryNotConfigured = errors.New("cloudinary is not configured")

// MediaUploadRequest selects what kind of course asset the browser will send.
// Thumbnails are images and previews are videos.
type MediaUploadRequest struct {
	ResourceType string `query:"resource_type" validate:"omitempty,oneof=image video"`
}

// CourseUploadSignature is everything the browser needs for a direct signed
// upload into a course's own media folder.
type CourseUploadSignature struct {
	Signature    string `json:"signature"`
	Timestamp    int64  `json:"timestamp"`
	APIKey       string `json:"api_key"`
	CloudName    string `json:"cloud_name"`
	Folder       string `json:"folder"`
	ResourceType string `json:"resource_type"`
	UploadURL    string `json:"upload_url"`
}

// SignCourseUpload signs an upload of resourceType media for courseID at ts.
func SignCourseUpload(cloudinaryURL, courseID, resourceType string, ts time.Time) (CourseUploadSignature, error) {
	if cloudinaryURL == "" {
		return CourseUploadSignature{}, errCloudinaryNotConfigured
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return CourseUploadSignature{}, err
	}
	parsedURL, err := url.Parse(cloudinaryURL)
	if err != nil {
		return CourseUploadSignature{}, err
	}
	secret, _ := parsedURL.User.Password()

	if resourceType == "" {
		resourceType = "image"
	}
	folder := fmt.Sprintf("%s/%s/%ss", courseMediaFolder, courseID, resourceType)

	paramsToSign, err := api.StructToParams(uploader.UploadParams{Folder: folder})
	if err != nil {
		return CourseUploadSignature{}, err
	}
	paramsToSign.Set("timestamp", strconv.FormatInt(ts.Unix(), 10))

	signature, err := api.SignParameters(paramsToSign, secret)
	if err != nil {
		return CourseUploadSignature{}, err
	}

	cloudName := cld.Config.Cloud.CloudName
	return CourseUploadSignature{
		Signature:    signature,
		Timestamp:    ts.Unix(),
		APIKey:       cld.Config.Cloud.APIKey,
		CloudName:    cloudName,
		Folder:       folder,
		ResourceType: resourceType,
		UploadURL:    fmt.Sprintf("%s/%s/%s/upload", cloudinaryUploadBase, cloudName, resourceType),
	}, nil
}

// GenerateUploadSignature signs a direct browser upload of media for an
// existing course.
func GenerateUploadSignature(c *fiber.Ctx) error {
	var req MediaUploadRequest
	if err := c.QueryParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid query parameters"})
	}
	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": err.Error()})
	}

	course, err := services.GetCourse(database.DB, c.Params("courseId"))
	if err != nil {
		return serviceError(c, err)
	}

	signed, err := SignCourseUpload(config.Config("CLOUDINARY_URL"), course.ID, req.ResourceType, time.Now())
	if errors.Is(err, errCloudinaryNotConfigured) {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Media uploads are not configured"})
	}
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "Failed to sign upload params"})
	}
	return c.JSON(signed)
}
