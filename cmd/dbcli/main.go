package main

import (
	"bufio"
	"database/sql"
	"fmt"
	"log"
	"math/rand"
	"os"
	"strings"
	"time"

	_ "github.com/lib/pq"
	"golang.org/x/crypto/bcrypt"

	"github.com/GitKaran4723/attendanceModule/internal/config"
	"github.com/GitKaran4723/attendanceModule/internal/database"
	"github.com/GitKaran4723/attendanceModule/internal/domain"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	reader := bufio.NewReader(os.Stdin)

	for {
		printMenu()
		fmt.Print("Select option: ")
		input, _ := reader.ReadString('\n')
		input = strings.TrimSpace(input)

		switch input {
		case "1":
			createDatabase(cfg)
		case "2":
			migrateSchema(cfg)
		case "3":
			migrateFresh(cfg)
		case "4":
			truncateTables(cfg)
		case "5":
			seedDemoData(cfg)
		case "6":
			deleteDatabase(cfg)
		case "0":
			fmt.Println("Bye.")
			os.Exit(0)
		default:
			fmt.Println("Invalid option")
		}

		fmt.Println()
		fmt.Print("Press Enter to continue...")
		reader.ReadString('\n')
	}
}

func printMenu() {
	fmt.Println()
	fmt.Println("========================================")
	fmt.Println("   ATTENDANCE MODULE DATABASE MANAGER")
	fmt.Println("========================================")
	fmt.Println()
	fmt.Println("1. Create database (if missing) + migrate schema")
	fmt.Println("2. Migrate schema")
	fmt.Println("3. Migrate fresh (drop everything + re-migrate)")
	fmt.Println("4. Truncate tables (keep reference data)")
	fmt.Println("5. Seed demo data")
	fmt.Println("6. Drop database")
	fmt.Println("0. Exit")
	fmt.Println()
	fmt.Println("----------------------------------------")
}

func getPostgresConn(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=postgres sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.SSLMode,
	)
	return sql.Open("postgres", connStr)
}

func getDBConn(cfg *config.Config) (*sql.DB, error) {
	connStr := fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		cfg.Database.Host, cfg.Database.Port, cfg.Database.User, cfg.Database.Password, cfg.Database.Name, cfg.Database.SSLMode,
	)
	return sql.Open("postgres", connStr)
}

func databaseExists(cfg *config.Config) (bool, error) {
	db, err := getPostgresConn(cfg)
	if err != nil {
		return false, err
	}
	defer db.Close()

	var exists bool
	err = db.QueryRow("SELECT EXISTS(SELECT 1 FROM pg_database WHERE datname = $1)", cfg.Database.Name).Scan(&exists)
	return exists, err
}

func createDatabase(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Create Database + Migrate ---")

	exists, err := databaseExists(cfg)
	if err != nil {
		fmt.Printf("Error checking database: %v\n", err)
		return
	}

	if exists {
		fmt.Printf("Database '%s' already exists.\n", cfg.Database.Name)
		fmt.Print("Continue with schema migration? (y/n): ")
		reader := bufio.NewReader(os.Stdin)
		input, _ := reader.ReadString('\n')
		if strings.TrimSpace(strings.ToLower(input)) != "y" {
			fmt.Println("Cancelled.")
			return
		}
	} else {
		db, err := getPostgresConn(cfg)
		if err != nil {
			fmt.Printf("Connection error: %v\n", err)
			return
		}
		defer db.Close()

		_, err = db.Exec(fmt.Sprintf("CREATE DATABASE %s", cfg.Database.Name))
		if err != nil {
			fmt.Printf("Error creating database: %v\n", err)
			return
		}
		fmt.Printf("Database '%s' created.\n", cfg.Database.Name)
	}

	migrateSchema(cfg)
}

func migrateSchema(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Migrate Schema ---")

	gdb, err := database.Connect(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}

	fmt.Println("Creating extensions...")
	if err := gdb.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		fmt.Printf("Error creating extensions: %v\n", err)
		return
	}

	fmt.Println("Migrating tables...")
	if err := database.Migrate(gdb); err != nil {
		fmt.Printf("Migration error: %v\n", err)
		return
	}

	fmt.Println()
	fmt.Println("Schema migration complete!")
}

func migrateFresh(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Migrate Fresh ---")
	fmt.Println("WARNING: all data will be lost!")
	fmt.Print("Type 'FRESH' to confirm: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) != "FRESH" {
		fmt.Println("Cancelled.")
		return
	}

	db, err := getDBConn(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}
	defer db.Close()

	fmt.Println("Dropping all tables...")
	for _, table := range allTables() {
		_, _ = db.Exec(fmt.Sprintf("DROP TABLE IF EXISTS %s CASCADE", table))
	}

	fmt.Println("Re-running migration...")
	migrateSchema(cfg)
}

func truncateTables(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Truncate Tables ---")
	fmt.Println("The following data will be DELETED:")
	fmt.Println("- attendance sessions and records, work diaries")
	fmt.Println("- import logs, campus check-ins, tests and results")
	fmt.Println("- students, faculties, users, refresh tokens")
	fmt.Println()
	fmt.Println("The following data will be KEPT:")
	fmt.Println("- programs, sections, semesters, subjects, schedules")
	fmt.Println()
	fmt.Print("Type 'TRUNCATE' to confirm: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) != "TRUNCATE" {
		fmt.Println("Cancelled.")
		return
	}

	db, err := getDBConn(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}
	defer db.Close()

	tablesToTruncate := []string{
		"test_results",
		"tests",
		"campus_check_ins",
		"import_logs",
		"work_diaries",
		"attendance_records",
		"attendance_sessions",
		"student_subject_enrollments",
		"subject_allocations",
		"students",
		"faculties",
		"refresh_tokens",
		"users",
	}

	for _, table := range tablesToTruncate {
		fmt.Printf("Truncating %s...\n", table)
		_, err := db.Exec(fmt.Sprintf("TRUNCATE TABLE %s CASCADE", table))
		if err != nil {
			fmt.Printf("Error truncating %s: %v\n", table, err)
		}
	}

	fmt.Println()
	fmt.Println("Truncate complete!")
}

func deleteDatabase(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Drop Database ---")
	fmt.Printf("WARNING: database '%s' will be dropped permanently!\n", cfg.Database.Name)
	fmt.Print("Type the database name to confirm: ")

	reader := bufio.NewReader(os.Stdin)
	input, _ := reader.ReadString('\n')
	if strings.TrimSpace(input) != cfg.Database.Name {
		fmt.Println("Name does not match. Cancelled.")
		return
	}

	db, err := getPostgresConn(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}
	defer db.Close()

	_, _ = db.Exec(fmt.Sprintf(`
		SELECT pg_terminate_backend(pg_stat_activity.pid)
		FROM pg_stat_activity
		WHERE pg_stat_activity.datname = '%s'
		AND pid <> pg_backend_pid()
	`, cfg.Database.Name))

	_, err = db.Exec(fmt.Sprintf("DROP DATABASE IF EXISTS %s", cfg.Database.Name))
	if err != nil {
		fmt.Printf("Error dropping database: %v\n", err)
		return
	}

	fmt.Printf("Database '%s' dropped.\n", cfg.Database.Name)
}

func allTables() []string {
	return []string{
		"test_results",
		"tests",
		"campus_check_ins",
		"import_logs",
		"work_diaries",
		"attendance_records",
		"attendance_sessions",
		"student_subject_enrollments",
		"subject_allocations",
		"class_schedules",
		"subjects",
		"students",
		"sections",
		"semesters",
		"programs",
		"faculties",
		"refresh_tokens",
		"users",
	}
}

func seedDemoData(cfg *config.Config) {
	fmt.Println()
	fmt.Println("--- Seed Demo Data ---")

	gdb, err := database.Connect(cfg)
	if err != nil {
		fmt.Printf("Connection error: %v\n", err)
		return
	}

	rng := rand.New(rand.NewSource(time.Now().UnixNano()))

	mustHash := func(plain string) string {
		h, err := bcrypt.GenerateFromPassword([]byte(plain), bcrypt.DefaultCost)
		if err != nil {
			panic(err)
		}
		return string(h)
	}

	fmt.Println("Seeding admin account...")
	admin := domain.User{
		Username:     "admin",
		Email:        "admin@college.edu",
		PasswordHash: mustHash("admin123"),
		Role:         domain.RoleAdmin,
		IsActive:     true,
	}
	if err := gdb.Where("username = ?", admin.Username).FirstOrCreate(&admin).Error; err != nil {
		fmt.Printf("Error seeding admin: %v\n", err)
		return
	}

	fmt.Println("Seeding program and section...")
	program := domain.Program{ProgramCode: "BCA", ProgramName: "Bachelor of Computer Applications", DurationYears: 3}
	if err := gdb.Where("program_code = ?", program.ProgramCode).FirstOrCreate(&program).Error; err != nil {
		fmt.Printf("Error seeding program: %v\n", err)
		return
	}
	section := domain.Section{SectionName: "BCA-A", ProgramID: program.ID, CurrentSemester: 3}
	if err := gdb.Where("section_name = ? AND program_id = ?", section.SectionName, program.ID).FirstOrCreate(&section).Error; err != nil {
		fmt.Printf("Error seeding section: %v\n", err)
		return
	}

	fmt.Println("Seeding faculty...")
	facultyNames := [][2]string{{"Asha", "Rao"}, {"Vikram", "Shetty"}, {"Meera", "Iyer"}}
	faculties := make([]domain.Faculty, 0, len(facultyNames))
	for i, name := range facultyNames {
		employeeID := fmt.Sprintf("EMP%03d", i+1)
		user := domain.User{
			Username:     employeeID,
			Email:        fmt.Sprintf("%s.%s@college.edu", strings.ToLower(name[0]), strings.ToLower(name[1])),
			PasswordHash: mustHash(employeeID),
			Role:         domain.RoleFaculty,
			IsActive:     true,
		}
		if i == 0 {
			user.Role = domain.RoleHOD
		}
		if err := gdb.Where("username = ?", user.Username).FirstOrCreate(&user).Error; err != nil {
			fmt.Printf("Error seeding faculty user: %v\n", err)
			return
		}
		faculty := domain.Faculty{
			UserID:     user.ID,
			EmployeeID: employeeID,
			FirstName:  name[0],
			LastName:   name[1],
			Email:      user.Email,
			Department: "Computer Applications",
			IsHOD:      i == 0,
			Status:     "active",
		}
		if err := gdb.Where("employee_id = ?", employeeID).FirstOrCreate(&faculty).Error; err != nil {
			fmt.Printf("Error seeding faculty: %v\n", err)
			return
		}
		faculties = append(faculties, faculty)
	}

	fmt.Println("Seeding subjects...")
	subjectDefs := [][2]string{{"BCA301", "Data Structures"}, {"BCA302", "Database Systems"}, {"BCA303", "Operating Systems"}}
	semester := 3
	subjects := make([]domain.Subject, 0, len(subjectDefs))
	for _, def := range subjectDefs {
		subject := domain.Subject{
			SubjectCode:    def[0],
			SubjectName:    def[1],
			Credits:        4,
			SubjectType:    "theory",
			ProgramID:      &program.ID,
			SemesterNumber: &semester,
		}
		if err := gdb.Where("subject_code = ?", def[0]).FirstOrCreate(&subject).Error; err != nil {
			fmt.Printf("Error seeding subject: %v\n", err)
			return
		}
		subjects = append(subjects, subject)
	}

	fmt.Println("Seeding students...")
	firstNames := []string{"Rahul", "Priya", "Arjun", "Sneha", "Karthik", "Divya", "Rohan", "Ananya", "Vishal", "Pooja"}
	lastNames := []string{"Kumar", "Sharma", "Nair", "Patil", "Reddy", "Gowda"}
	for i := 0; i < 20; i++ {
		roll := fmt.Sprintf("U03%04d", i+1)
		first := firstNames[rng.Intn(len(firstNames))]
		last := lastNames[rng.Intn(len(lastNames))]
		dob := time.Date(2004+rng.Intn(3), time.Month(1+rng.Intn(12)), 1+rng.Intn(28), 0, 0, 0, 0, time.UTC)

		user := domain.User{
			Username:     roll,
			Email:        fmt.Sprintf("%s.%s@student.college.edu", strings.ToLower(first), strings.ToLower(roll)),
			PasswordHash: mustHash(dob.Format("02012006")),
			Role:         domain.RoleStudent,
			IsActive:     true,
		}
		if err := gdb.Where("username = ?", roll).FirstOrCreate(&user).Error; err != nil {
			fmt.Printf("Error seeding student user: %v\n", err)
			return
		}

		parent := domain.User{
			Username:     roll + "_parent",
			Email:        "parent_" + user.Email,
			PasswordHash: mustHash(dob.Format("02012006")),
			Role:         domain.RoleParent,
			IsActive:     true,
		}
		if err := gdb.Where("username = ?", parent.Username).FirstOrCreate(&parent).Error; err != nil {
			fmt.Printf("Error seeding parent user: %v\n", err)
			return
		}

		student := domain.Student{
			UserID:      user.ID,
			RollNumber:  roll,
			FirstName:   first,
			LastName:    last,
			DateOfBirth: &dob,
			Email:       user.Email,
			ProgramID:   &program.ID,
			SectionID:   &section.ID,
			Status:      "active",
		}
		if err := gdb.Where("roll_number = ?", roll).FirstOrCreate(&student).Error; err != nil {
			fmt.Printf("Error seeding student: %v\n", err)
			return
		}
	}

	fmt.Println("Seeding allocations and this week's schedule...")
	slots := [][2]string{{"09:00", "10:00"}, {"10:00", "11:00"}, {"11:30", "12:30"}}
	weekStart := time.Now().UTC().Truncate(24 * time.Hour)
	for i, subject := range subjects {
		faculty := faculties[i%len(faculties)]
		allocation := domain.SubjectAllocation{
			SubjectID:      subject.ID,
			FacultyID:      faculty.ID,
			SectionID:      &section.ID,
			AllocationType: "primary",
		}
		if err := gdb.Where("subject_id = ? AND faculty_id = ? AND section_id = ?", subject.ID, faculty.ID, section.ID).
			FirstOrCreate(&allocation).Error; err != nil {
			fmt.Printf("Error seeding allocation: %v\n", err)
			return
		}

		for day := 0; day < 5; day++ {
			slot := slots[i%len(slots)]
			schedule := domain.ClassSchedule{
				SubjectID: subject.ID,
				FacultyID: faculty.ID,
				SectionID: section.ID,
				Room:      fmt.Sprintf("R%d0%d", i+1, day+1),
				Date:      weekStart.AddDate(0, 0, day),
				StartTime: slot[0],
				EndTime:   slot[1],
				ClassType: domain.ClassTheory,
			}
			if err := gdb.Where(
				"subject_id = ? AND faculty_id = ? AND section_id = ? AND date = ? AND start_time = ?",
				subject.ID, faculty.ID, section.ID, schedule.Date, slot[0],
			).FirstOrCreate(&schedule).Error; err != nil {
				fmt.Printf("Error seeding schedule: %v\n", err)
				return
			}
		}
	}

	fmt.Println()
	fmt.Println("Demo data seeded!")
	fmt.Println("Accounts: admin/admin123, EMP001..EMP003 (password = employee id),")
	fmt.Println("students U030001..U030020 (password = DOB ddmmyyyy), parents <roll>_parent.")
}
