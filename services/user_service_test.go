package services

import (
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/suite"

	"github.com/proa/teiacultural/models"
)

type UserServiceTestSuite struct {
	suite.Suite
	users *fakeUserRepo
	roles *fakeRoleRepo
	pubs  *fakePublicationRepo
	store *fakeObjectStore
	svc   UserService
}

func (s *UserServiceTestSuite) SetupTest() {
	s.users = newFakeUserRepo()
	s.roles = newFakeRoleRepo()
	s.pubs = newFakePublicationRepo(s.users)
	s.store = newFakeObjectStore()

	log := logrus.New()
	log.SetOutput(io.Discard)

	s.svc = NewUserService(s.users, s.roles, s.pubs, s.store, log)
}

func (s *UserServiceTestSuite) seedUser(email string, tier models.Tier, admin bool) *models.User {
	user := &models.User{
		Email:      email,
		Password:   "hash",
		Name:       "Test User",
		NationalID: email + "-nid",
		Phone:      "+55 11 90000-0000",
		Tier:       tier,
		IsAdmin:    admin,
	}
	s.Require().NoError(s.users.Create(user))
	return user
}

func (s *UserServiceTestSuite) seedPremium(email, username string) *models.User {
	user := s.seedUser(email, models.TierPremium, false)
	user.Username = &username
	s.Require().NoError(s.users.Update(user))
	return user
}

func (s *UserServiceTestSuite) TestUpgradeSetsPremiumTierAndUsername() {
	user := s.seedUser("a@x.com", models.TierBasic, false)

	upgraded, err := s.svc.UpgradeToPremium(user.ID, "artist1")
	s.Require().NoError(err)

	s.Equal(models.TierPremium, upgraded.Tier)
	s.Require().NotNil(upgraded.Username)
	s.Equal("artist1", *upgraded.Username)

	stored, err := s.users.GetByID(user.ID)
	s.Require().NoError(err)
	s.Equal(models.TierPremium, stored.Tier)
	s.NotNil(stored.Username)
}

func (s *UserServiceTestSuite) TestUpgradeRejectsAdmin() {
	admin := s.seedUser("admin@x.com", models.TierBasic, true)

	_, err := s.svc.UpgradeToPremium(admin.ID, "boss")
	s.IsType(models.ErrorForbidden{}, err)

	stored, _ := s.users.GetByID(admin.ID)
	s.Equal(models.TierBasic, stored.Tier)
	s.Nil(stored.Username)
}

func (s *UserServiceTestSuite) TestUpgradeUsernameConflict() {
	u1 := s.seedUser("a@x.com", models.TierBasic, false)
	u2 := s.seedUser("b@x.com", models.TierBasic, false)

	_, err := s.svc.UpgradeToPremium(u1.ID, "artist1")
	s.Require().NoError(err)

	_, err = s.svc.UpgradeToPremium(u2.ID, "artist1")
	s.Require().Error(err)
	s.IsType(models.ErrorConflict{}, err)

	stored, _ := s.users.GetByID(u2.ID)
	s.Equal(models.TierBasic, stored.Tier)
	s.Nil(stored.Username)
}

func (s *UserServiceTestSuite) TestUpgradeFailsWhenCatalogMissesPremium() {
	delete(s.roles.roles, models.RolePremium)
	user := s.seedUser("a@x.com", models.TierBasic, false)

	_, err := s.svc.UpgradeToPremium(user.ID, "artist1")
	s.IsType(models.ErrorInternalServer{}, err)
}

func (s *UserServiceTestSuite) TestUpgradeUnknownUserNotFound() {
	_, err := s.svc.UpgradeToPremium(uuid.New(), "artist1")
	s.IsType(models.ErrorNotFound{}, err)
}

func (s *UserServiceTestSuite) TestDowngradeClearsUsernameKeepsProfile() {
	user := s.seedPremium("a@x.com", "artist1")
	user.ProfessionalName = "DJ Ana"
	user.Category = "music"
	s.Require().NoError(s.users.Update(user))

	downgraded, err := s.svc.DowngradeToBasic(user.ID)
	s.Require().NoError(err)

	s.Equal(models.TierBasic, downgraded.Tier)
	s.Nil(downgraded.Username)
	// Professional fields stay dormant for a future re-upgrade.
	s.Equal("DJ Ana", downgraded.ProfessionalName)
	s.Equal("music", downgraded.Category)
}

func (s *UserServiceTestSuite) TestUpgradeThenDowngradeRoundTrip() {
	user := s.seedUser("a@x.com", models.TierBasic, false)

	_, err := s.svc.UpgradeToPremium(user.ID, "artist1")
	s.Require().NoError(err)

	downgraded, err := s.svc.DowngradeToBasic(user.ID)
	s.Require().NoError(err)
	s.Equal(models.TierBasic, downgraded.Tier)
	s.Nil(downgraded.Username)

	// The released username is claimable again.
	other := s.seedUser("b@x.com", models.TierBasic, false)
	_, err = s.svc.UpgradeToPremium(other.ID, "artist1")
	s.NoError(err)
}

func (s *UserServiceTestSuite) TestDowngradeRejectsAdmin() {
	admin := s.seedUser("admin@x.com", models.TierBasic, true)

	_, err := s.svc.DowngradeToBasic(admin.ID)
	s.IsType(models.ErrorForbidden{}, err)
}

func (s *UserServiceTestSuite) TestUpdateDetailsRequiresPremium() {
	user := s.seedUser("a@x.com", models.TierBasic, false)
	name := "DJ Ana"

	_, err := s.svc.UpdatePremiumDetails(user.ID, models.PremiumDetailsUpdate{ProfessionalName: &name})
	s.IsType(models.ErrorForbidden{}, err)
}

func (s *UserServiceTestSuite) TestUpdateDetailsAppliesOnlyProvidedFields() {
	user := s.seedPremium("a@x.com", "artist1")
	user.AboutMe = "original about"
	s.Require().NoError(s.users.Update(user))

	name := "DJ Ana"
	category := "music"
	updated, err := s.svc.UpdatePremiumDetails(user.ID, models.PremiumDetailsUpdate{
		ProfessionalName: &name,
		Category:         &category,
	})
	s.Require().NoError(err)

	s.Equal("DJ Ana", updated.ProfessionalName)
	s.Equal("music", updated.Category)
	s.Equal("original about", updated.AboutMe, "nil field stays untouched")
}

func (s *UserServiceTestSuite) TestUpdateDetailsUploadsProfilePicture() {
	user := s.seedPremium("a@x.com", "artist1")

	updated, err := s.svc.UpdatePremiumDetails(user.ID, models.PremiumDetailsUpdate{
		ProfilePicture: &models.MediaUpload{Data: []byte("png-bytes"), ContentType: "image/png"},
	})
	s.Require().NoError(err)

	s.NotEmpty(updated.ProfilePicture)
	s.Len(s.store.uploads, 1)
	for key := range s.store.uploads {
		s.True(strings.HasPrefix(key, "artist1/profile/"))
	}
}

func (s *UserServiceTestSuite) TestUpdateDetailsSkipsRejectedContentType() {
	user := s.seedPremium("a@x.com", "artist1")

	updated, err := s.svc.UpdatePremiumDetails(user.ID, models.PremiumDetailsUpdate{
		ProfilePicture: &models.MediaUpload{Data: []byte("gif-bytes"), ContentType: "image/gif"},
	})
	s.Require().NoError(err)

	s.Empty(updated.ProfilePicture)
	s.Empty(s.store.uploads)
}

func (s *UserServiceTestSuite) TestDeleteUserCascades() {
	user := s.seedPremium("a@x.com", "artist1")
	user.ProfilePicture = "https://s3.test/media/artist1/profile/pic"
	s.Require().NoError(s.users.Update(user))

	// Two publications: one with two images, one with three.
	ref := func(n int) string { return fmt.Sprintf("https://s3.test/media/artist1/publications/%d", n) }
	p1 := &models.Publication{UserID: user.ID, Content: "first", CreatedAt: time.Now()}
	p1.SetImage(0, ref(1))
	p1.SetImage(1, ref(2))
	s.Require().NoError(s.pubs.Create(p1))

	p2 := &models.Publication{UserID: user.ID, Content: "second", CreatedAt: time.Now()}
	p2.SetImage(0, ref(3))
	p2.SetImage(2, ref(4))
	p2.SetImage(3, ref(5))
	s.Require().NoError(s.pubs.Create(p2))

	s.Require().NoError(s.svc.DeleteUser(user.ID))

	_, err := s.users.GetByID(user.ID)
	s.Error(err, "user record is gone")

	remaining, _ := s.pubs.GetByUser(user.ID)
	s.Empty(remaining)
	s.Equal(2, s.pubs.deleted)

	// Five publication images plus the profile picture.
	s.Len(s.store.deleted, 6)
	s.Contains(s.store.deleted, "https://s3.test/media/artist1/profile/pic")
	for n := 1; n <= 5; n++ {
		s.Contains(s.store.deleted, ref(n))
	}
	s.Equal([]string{"artist1"}, s.store.swept, "username namespace is swept for orphans")
}

func (s *UserServiceTestSuite) TestDeleteUserSurvivesStoreFailures() {
	user := s.seedPremium("a@x.com", "artist1")
	user.ProfilePicture = "https://s3.test/media/artist1/profile/pic"
	s.Require().NoError(s.users.Update(user))

	s.store.deleteErr = fmt.Errorf("bucket unavailable")

	s.Require().NoError(s.svc.DeleteUser(user.ID), "record deletion wins over media cleanup")

	_, err := s.users.GetByID(user.ID)
	s.Error(err)
}

func (s *UserServiceTestSuite) TestDeleteUserRejectsAdmin() {
	admin := s.seedUser("admin@x.com", models.TierBasic, true)

	err := s.svc.DeleteUser(admin.ID)
	s.IsType(models.ErrorForbidden{}, err)

	_, getErr := s.users.GetByID(admin.ID)
	s.NoError(getErr)
}

func (s *UserServiceTestSuite) TestSummaryAndProfileLookups() {
	user := s.seedPremium("a@x.com", "artist1")
	user.ProfessionalName = "DJ Ana"
	user.Category = "live music"
	s.Require().NoError(s.users.Update(user))

	summary, err := s.svc.GetSummaryByUsername("artist1")
	s.Require().NoError(err)
	s.Equal(user.ID, summary.ID)
	s.Equal("DJ Ana", summary.ProfessionalName)

	_, err = s.svc.GetSummaryByUsername("ghost")
	s.IsType(models.ErrorNotFound{}, err)

	profile, err := s.svc.GetProfileByUsername("artist1")
	s.Require().NoError(err)
	s.Equal("a@x.com", profile.Email)

	summaries, err := s.svc.ListSummariesByCategory("music")
	s.Require().NoError(err)
	s.Len(summaries, 1)
}

func TestUserServiceTestSuite(t *testing.T) {
	suite.Run(t, new(UserServiceTestSuite))
}
