package repositories

import (
	"errors"

	"rentChat/internal/errs"
	"rentChat/internal/models"
	"rentChat/internal/utils"

	"gorm.io/gorm"
)

type AuthenticationRepository struct {
	db *gorm.DB
}

func NewAuthenticationRepository(db *gorm.DB) *AuthenticationRepository {
	return &AuthenticationRepository{
		db: db,
	}
}

func (ar *AuthenticationRepository) CreateUser(user *models.User) (*models.User, []error) {
	var errorList []error
	result := ar.db.Create(user)
	if result.Error != nil {
		errorList = append(errorList, errs.NewPersistenceError("create user", result.Error))
		return nil, errorList
	}
	return user, nil
}

func (ar *AuthenticationRepository) CheckIfUserExists(email string) *models.User {
	var user models.User
	result := ar.db.Where("email = ?", email).First(&user)
	if result.Error == nil && result.RowsAffected > 0 {
		return &user
	}
	return nil
}

func (ar *AuthenticationRepository) Login(login *models.LoginRequestBody) (*models.User, []error) {
	var errorList []error
	user := ar.CheckIfUserExists(login.Email)
	if user == nil {
		errorList = append(errorList, errs.ErrUserNotFound)
		return nil, errorList
	}
	if err := utils.CompareHashAndPassword(user.PasswordHash, login.Password); err != nil {
		errorList = append(errorList, errs.ErrWrongPassword)
		return nil, errorList
	}
	return user, nil
}

func (ar *AuthenticationRepository) GetSingleUser(id uint) (*models.User, []error) {
	var errorList []error
	var user models.User
	result := ar.db.Where("id = ?", id).First(&user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			errorList = append(errorList, errs.ErrUserNotFound)
			return nil, errorList
		}
		errorList = append(errorList, errs.NewPersistenceError("get user", result.Error))
		return nil, errorList
	}
	return &user, nil
}

func (ar *AuthenticationRepository) GetAllUsersWithPagination(page, size int) (*models.GetUsersResponse, []error) {
	var errorList []error
	var users []models.User
	var total int64

	transactionErr := ar.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Scopes(utils.Paginate(page, size)).Find(&users).Error; err != nil {
			return err
		}
		return tx.Model(&models.User{}).Count(&total).Error
	})
	if transactionErr != nil {
		errorList = append(errorList, errs.NewPersistenceError("list users", transactionErr))
		return nil, errorList
	}

	userResponses := []models.UserResponse{}
	for _, user := range users {
		userResponses = append(userResponses, *user.ToUserResponse())
	}

	return &models.GetUsersResponse{
		Users: userResponses,
		Page:  page,
		Size:  size,
		Total: total,
	}, nil
}

func (ar *AuthenticationRepository) UpdateUser(request *models.UpdateUserRequest) (*models.User, []error) {
	var errorList []error
	user, getErrs := ar.GetSingleUser(request.ID)
	if len(getErrs) > 0 {
		return nil, getErrs
	}

	if request.FirstName != "" {
		user.FirstName = request.FirstName
	}
	if request.LastName != "" {
		user.LastName = request.LastName
	}
	if request.ProfilePhoto != nil {
		user.ProfilePhoto = request.ProfilePhoto
	}

	if err := ar.db.Save(user).Error; err != nil {
		errorList = append(errorList, errs.NewPersistenceError("update user", err))
		return nil, errorList
	}
	return user, nil
}

func (ar *AuthenticationRepository) UpdateUserProfilePhoto(userID uint, url string) []error {
	var errorList []error
	if err := ar.db.Model(&models.User{}).
		Where("id = ?", userID).
		Update("profile_photo", url).Error; err != nil {
		errorList = append(errorList, errs.NewPersistenceError("update profile photo", err))
		return errorList
	}
	return nil
}
