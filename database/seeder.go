package database

import (
	"log"
	"time"

	"sports-federation-backend/app/model"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// RunSeeders menjalankan seluruh seeder. Setiap seeder melewati tabel yang
// sudah berisi, jadi aman dipanggil setiap start.
func RunSeeders(db *gorm.DB) {
	SeedRoles(db)
	SeedPermissions(db)
	SeedRolePermissions(db)
	SeedUsers(db)
	SeedReferenceData(db)
}

// ===============================
//  SEED ROLES
// ===============================

// SeedRoles menambahkan role admin dan operator.
func SeedRoles(db *gorm.DB) {
	var count int64
	db.Model(&model.Role{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Role sudah ada, skip seeding roles.")
		return
	}

	roles := []model.Role{
		{ID: uuid.New(), Name: "admin", Description: "Pengelola template form dan data federasi"},
		{ID: uuid.New(), Name: "operator", Description: "Pengisi form dan penjadwal latihan"},
	}
	if err := db.Create(&roles).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed roles: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed role: admin, operator")
}

// ===============================
//  SEED PERMISSIONS
// ===============================

func SeedPermissions(db *gorm.DB) {
	var count int64
	db.Model(&model.Permission{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Permission sudah ada, skip seeding.")
		return
	}

	perms := []model.Permission{
		{Name: "form_template:read", Resource: "form_template", Action: "read"},
		{Name: "form_template:write", Resource: "form_template", Action: "write"},
		{Name: "form_submission:create", Resource: "form_submission", Action: "create"},
		{Name: "form_submission:delete", Resource: "form_submission", Action: "delete"},
		{Name: "training_schedule:write", Resource: "training_schedule", Action: "write"},
		{Name: "activity_log:read", Resource: "activity_log", Action: "read"},
		{Name: "user:create", Resource: "user", Action: "create"},
	}
	if err := db.Create(&perms).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed permissions: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed permissions")
}

// ===============================
//  SEED ROLE-PERMISSIONS
// ===============================

// SeedRolePermissions: admin mendapat semua permission, operator hanya
// baca template, isi form, dan jadwal latihan.
func SeedRolePermissions(db *gorm.DB) {
	var adminRole model.Role
	if err := db.Preload("Permissions").Where("name = ?", "admin").First(&adminRole).Error; err != nil {
		log.Println("[SEEDER] Role admin belum ada, skip role_permissions.")
		return
	}
	if len(adminRole.Permissions) > 0 {
		log.Println("[SEEDER] role_permissions sudah terisi, skip.")
		return
	}

	var perms []model.Permission
	if err := db.Find(&perms).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal mengambil permissions: %v", err)
	}
	if err := db.Model(&adminRole).Association("Permissions").Append(&perms); err != nil {
		log.Fatalf("[SEEDER] Gagal assign permission ke admin: %v", err)
	}

	var operator model.Role
	if err := db.Where("name = ?", "operator").First(&operator).Error; err != nil {
		log.Println("[SEEDER] Role operator belum ada, skip.")
		return
	}
	var opPerms []model.Permission
	for _, p := range perms {
		switch p.Name {
		case "form_template:read", "form_submission:create", "training_schedule:write":
			opPerms = append(opPerms, p)
		}
	}
	if err := db.Model(&operator).Association("Permissions").Append(&opPerms); err != nil {
		log.Fatalf("[SEEDER] Gagal assign permission ke operator: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed role_permissions")
}

// ===============================
//  SEED USERS
// ===============================

// SeedUsers menambahkan user admin dan operator awal.
func SeedUsers(db *gorm.DB) {
	var count int64
	db.Model(&model.User{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] User sudah ada, skip seeding.")
		return
	}

	var adminRole, operatorRole model.Role
	db.Where("name = ?", "admin").First(&adminRole)
	db.Where("name = ?", "operator").First(&operatorRole)

	password := "123123"
	hash, _ := bcrypt.GenerateFromPassword([]byte(password), 10)

	users := []model.User{
		{
			ID:           uuid.New(),
			Username:     "admin",
			Email:        "admin@federasi.id",
			PasswordHash: string(hash),
			FullName:     "Admin Federasi",
			RoleID:       adminRole.ID,
			IsActive:     true,
		},
		{
			ID:           uuid.New(),
			Username:     "operator",
			Email:        "operator@federasi.id",
			PasswordHash: string(hash),
			FullName:     "Operator Cabor",
			RoleID:       operatorRole.ID,
			IsActive:     true,
		},
	}
	if err := db.Create(&users).Error; err != nil {
		log.Fatalf("[SEEDER] Gagal seed users: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed 2 user (admin, operator), password: 123123")
}

// ===============================
//  SEED DATA REFERENSI
// ===============================

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

// SeedReferenceData mengisi cabor, atlet, pelatih, venue, dan event contoh
// yang menjadi sumber data field form.
func SeedReferenceData(db *gorm.DB) {
	var count int64
	db.Model(&model.Cabor{}).Count(&count)
	if count > 0 {
		log.Println("[SEEDER] Data referensi sudah ada, skip.")
		return
	}

	err := db.Transaction(func(tx *gorm.DB) error {
		cabors := []model.Cabor{
			{Name: "Atletik", Code: "ATL"},
			{Name: "Renang", Code: "RNG"},
			{Name: "Bulu Tangkis", Code: "BTK"},
		}
		if err := tx.Create(&cabors).Error; err != nil {
			return err
		}
		atletik, renang := cabors[0].ID, cabors[1].ID

		coaches := []model.Coach{
			{Name: "Budi", License: "A", CaborID: &atletik, Phone: "081200000001"},
			{Name: "Sari", License: "B", CaborID: &renang, Phone: "081200000002"},
		}
		if err := tx.Create(&coaches).Error; err != nil {
			return err
		}

		budi, sari := coaches[0].ID, coaches[1].ID

		athletes := []model.Athlete{
			{Name: "Rina", Gender: "P", BirthDate: date(2006, 3, 14), CaborID: &renang, CoachID: &sari, CoachName: "Sari", Berat: 52, Tinggi: 162},
			{Name: "Dimas", Gender: "L", BirthDate: date(2005, 7, 2), CaborID: &atletik, CoachID: &budi, CoachName: "Budi", Berat: 64, Tinggi: 171},
			{Name: "Putri", Gender: "P", BirthDate: date(2007, 1, 20), CaborID: &renang, CoachID: &sari, CoachName: "Sari", Berat: 49, Tinggi: 158},
			{Name: "Agus", Gender: "L", BirthDate: date(2004, 11, 5), CaborID: &atletik, CoachID: &budi, CoachName: "Budi", Berat: 72, Tinggi: 178},
			{Name: "Andi", Gender: "L", BirthDate: date(2005, 9, 9), CaborID: &atletik, CoachID: &budi, CoachName: "Budi", Berat: 70, Tinggi: 175},
		}
		if err := tx.Create(&athletes).Error; err != nil {
			return err
		}

		venues := []model.Venue{
			{Name: "Stadion Utama", Address: "Jl. Stadion No. 1", Capacity: 20000},
			{Name: "Kolam Renang Tirta", Address: "Jl. Tirta No. 5", Capacity: 800},
		}
		if err := tx.Create(&venues).Error; err != nil {
			return err
		}

		events := []model.Event{
			{Name: "Kejurda Atletik", Location: "Stadion Utama", StartDate: date(2025, 5, 10), EndDate: date(2025, 5, 14)},
		}
		return tx.Create(&events).Error
	})
	if err != nil {
		log.Fatalf("[SEEDER] Gagal seed data referensi: %v", err)
	}

	log.Println("[SEEDER] Berhasil seed cabor, atlet, pelatih, venue, event")
}
