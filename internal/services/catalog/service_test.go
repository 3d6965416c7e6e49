package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/palaro/guessquiz/internal/model"
	"github.com/palaro/guessquiz/internal/testutil"
)

type CatalogTestSuite struct {
	suite.Suite
	dir       string
	imagesDir string
	service   *Service
}

func TestCatalogTestSuite(t *testing.T) {
	suite.Run(t, new(CatalogTestSuite))
}

func (s *CatalogTestSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.imagesDir = filepath.Join(s.dir, "images")
	s.Require().NoError(os.MkdirAll(s.imagesDir, 0o755))
	s.service = NewService(testutil.NopLogger())
}

func (s *CatalogTestSuite) writeCatalog(content string, images ...string) string {
	path := filepath.Join(s.dir, "puzzles.json")
	s.Require().NoError(os.WriteFile(path, []byte(content), 0o644))
	for _, img := range images {
		s.Require().NoError(os.WriteFile(filepath.Join(s.imagesDir, img), []byte("img"), 0o644))
	}
	return path
}

func (s *CatalogTestSuite) TestLoadFromFile() {
	path := s.writeCatalog(`[{"image":"eiffel tower.jpg"},{"image":"giraffe.png"}]`,
		"eiffel tower.jpg", "giraffe.png")

	s.Require().NoError(s.service.LoadFromFile(path, s.imagesDir))

	s.True(s.service.Loaded())
	s.Equal(2, s.service.Size())

	pool, err := s.service.Pool()
	s.Require().NoError(err)
	s.Equal([]model.Puzzle{{ImageRef: "eiffel tower.jpg"}, {ImageRef: "giraffe.png"}}, pool)
}

func (s *CatalogTestSuite) TestPoolReturnsCopy() {
	path := s.writeCatalog(`[{"image":"giraffe.png"}]`, "giraffe.png")
	s.Require().NoError(s.service.LoadFromFile(path, s.imagesDir))

	pool, err := s.service.Pool()
	s.Require().NoError(err)
	pool[0].ImageRef = "mutated.png"

	again, err := s.service.Pool()
	s.Require().NoError(err)
	s.Equal("giraffe.png", again[0].ImageRef)
}

func (s *CatalogTestSuite) TestLoadFailsOnMissingImagesDir() {
	path := s.writeCatalog(`[{"image":"giraffe.png"}]`, "giraffe.png")

	err := s.service.LoadFromFile(path, filepath.Join(s.dir, "nope"))
	s.Error(err)
	s.False(s.service.Loaded())
}

func (s *CatalogTestSuite) TestLoadFailsOnMissingImageFile() {
	path := s.writeCatalog(`[{"image":"giraffe.png"},{"image":"missing.jpg"}]`, "giraffe.png")

	err := s.service.LoadFromFile(path, s.imagesDir)
	s.ErrorContains(err, "missing.jpg")
}

func (s *CatalogTestSuite) TestLoadFailsOnEmptyCatalog() {
	path := s.writeCatalog(`[]`)

	err := s.service.LoadFromFile(path, s.imagesDir)
	s.ErrorContains(err, "no puzzles")
}

func (s *CatalogTestSuite) TestLoadFailsOnMalformedJSON() {
	path := s.writeCatalog(`{not json`)

	s.Error(s.service.LoadFromFile(path, s.imagesDir))
}

func (s *CatalogTestSuite) TestLoadRejectsPathTraversal() {
	path := s.writeCatalog(`[{"image":"../secret.jpg"}]`)

	err := s.service.LoadFromFile(path, s.imagesDir)
	s.ErrorContains(err, "bare file name")
}

func (s *CatalogTestSuite) TestImagePath() {
	path := s.writeCatalog(`[{"image":"giraffe.png"}]`, "giraffe.png")
	s.Require().NoError(s.service.LoadFromFile(path, s.imagesDir))

	resolved, err := s.service.ImagePath("giraffe.png")
	s.Require().NoError(err)
	s.Equal(filepath.Join(s.imagesDir, "giraffe.png"), resolved)

	_, err = s.service.ImagePath("unknown.png")
	s.ErrorIs(err, ErrUnknownImage)
}

func (s *CatalogTestSuite) TestUnloadedService() {
	_, err := s.service.Pool()
	s.ErrorIs(err, model.ErrCatalogNotLoaded)

	_, err = s.service.ImagePath("giraffe.png")
	s.ErrorIs(err, model.ErrCatalogNotLoaded)
}
