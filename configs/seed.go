package configs

import (
	"errors"
	"log"
	"strings"

	"foodcart/entity"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// สร้าง user ตัวอย่างครั้งแรก (ใช้ทดสอบ checkout)
func SeedDemoUser(database *gorm.DB, email, password string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		log.Println("skip seeding demo user: missing DEMO_EMAIL/DEMO_PASSWORD")
		return nil
	}

	var count int64
	if err := database.Model(&entity.User{}).Where("email = ?", email).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	return database.Create(&entity.User{
		Email:     email,
		Password:  string(hash),
		FirstName: "Demo",
		LastName:  "Customer",
	}).Error
}

// Seed zones, branches and a small menu. Runs once: skipped when any
// category exists.
func SeedCatalog(database *gorm.DB) error {
	var existing entity.Category
	err := database.First(&existing).Error
	if err == nil {
		return nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	return database.Transaction(func(tx *gorm.DB) error {
		zones := []entity.DeliveryZone{
			{City: "Bangkok", AreaName: "Sathorn", DeliveryPrice: 10},
			{City: "Bangkok", AreaName: "Bang Na", DeliveryPrice: 25},
		}
		if err := tx.Create(&zones).Error; err != nil {
			return err
		}

		branches := []entity.Branch{
			{Name: "Silom", Address: "12 Silom Rd", IsActive: true},
			{Name: "Ari", Address: "3 Phahonyothin Soi 7", IsActive: true},
		}
		if err := tx.Create(&branches).Error; err != nil {
			return err
		}
		// gorm ข้าม zero value ตอน create → ปิดสาขาทีหลัง
		closed := entity.Branch{Name: "Old Town", Address: "1 Charoen Krung Rd", IsActive: true}
		if err := tx.Create(&closed).Error; err != nil {
			return err
		}
		if err := tx.Model(&closed).Update("is_active", false).Error; err != nil {
			return err
		}

		mains := entity.Category{Name: "Mains", SortOrder: 1}
		drinks := entity.Category{Name: "Drinks", SortOrder: 2}
		if err := tx.Create(&mains).Error; err != nil {
			return err
		}
		if err := tx.Create(&drinks).Error; err != nil {
			return err
		}

		items := []entity.MenuItem{
			{
				Name: "Pad Krapow", Description: "Holy basil stir fry with rice", Price: 60, IsAvailable: true,
				CategoryID: mains.ID,
				OptionGroups: []entity.OptionGroup{
					{Name: "Protein", SingleSelect: true, IsRequired: true, SortOrder: 1, Values: []entity.OptionValue{
						{Name: "Pork", PriceModifier: 0, SortOrder: 1},
						{Name: "Chicken", PriceModifier: 0, SortOrder: 2},
						{Name: "Shrimp", PriceModifier: 20, SortOrder: 3},
					}},
					{Name: "Fried egg", SortOrder: 2, Values: []entity.OptionValue{
						{Name: "Add fried egg", PriceModifier: 10, SortOrder: 1},
					}},
				},
				Images: []entity.MenuImage{{URL: "/images/pad-krapow.jpg"}},
			},
			{
				Name: "Khao Man Gai", Description: "Poached chicken rice", Price: 55, IsAvailable: true,
				CategoryID: mains.ID,
			},
			{
				Name: "Thai Iced Tea", Description: "Cha yen", Price: 35, IsAvailable: true,
				CategoryID: drinks.ID,
				OptionGroups: []entity.OptionGroup{
					{Name: "Size", SingleSelect: true, SortOrder: 1, Values: []entity.OptionValue{
						{Name: "Regular", PriceModifier: 0, SortOrder: 1},
						{Name: "Large", PriceModifier: 10, SortOrder: 2},
					}},
				},
			},
		}
		if err := tx.Create(&items).Error; err != nil {
			return err
		}

		log.Println("catalog seeded")
		return nil
	})
}
