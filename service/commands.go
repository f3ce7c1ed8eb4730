package service

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"time"

	"blogfront/app/repositories"
)

var osExit = os.Exit

// HandleStoreCommand handles store subcommands and returns an exit code.
func HandleStoreCommand(args []string) int {
	if len(args) < 1 {
		printStoreHelp()
		osExit(1)
		return 1
	}

	cmd := args[0]
	switch cmd {
	case "clean":
		return clean()
	case "init":
		return initDb()
	case "backup":
		return backup()
	case "restore":
		if len(args) < 2 {
			fmt.Println("Error: backup file path required for restore")
			osExit(1)
			return 1
		}
		return restore(args[1])
	case "clients":
		return clients()
	case "help":
		printStoreHelp()
		return 0
	default:
		fmt.Printf("Unknown store command: %s\n\n", cmd)
		printStoreHelp()
		osExit(1)
		return 1
	}
}

// printStoreHelp prints help for store subcommands.
func printStoreHelp() {
	helpText := `Usage: blogfront store <command>

Commands:
  init                            Initialize a new empty settings store
  clean                           Remove the settings store
  backup                          Create a backup of the settings store
  restore [file]                  Restore the settings store from a backup
  clients                         List the base URLs stored per browser
  help                            Display this help message
`
	fmt.Println(helpText)
}

// backupDir keeps backups next to the store directory.
func backupDir() string {
	return filepath.Join(filepath.Dir(dbPath), "backups")
}

// clean removes the store.
func clean() int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("Store is already clean (does not exist)")
		return 0
	}

	fmt.Print("Are you sure you want to remove every stored base URL and snapshot? This cannot be undone. [y/N] ")
	var response string
	fmt.Scanln(&response)
	if response != "y" && response != "Y" {
		fmt.Println("Operation cancelled")
		return 1
	}

	if err := os.RemoveAll(dbPath); err != nil {
		fmt.Printf("Failed to clean store: %v\n", err)
		return 1
	}
	fmt.Println("Store cleaned successfully")
	return 0
}

// initDb initializes a new empty store.
func initDb() int {
	if _, err := os.Stat(dbPath); err == nil {
		fmt.Println("Store already exists. Use 'clean' first if you want to reinitialize.")
		return 1
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Printf("Failed to create store directory: %v\n", err)
		return 1
	}

	db, err := openDB(dbPath)
	if err != nil {
		fmt.Printf("Failed to initialize store: %v\n", err)
		return 1
	}
	defer db.Close()

	fmt.Println("Store initialized successfully")
	return 0
}

// backup writes a full backup of the store.
func backup() int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No store exists to backup")
		return 1
	}

	dir := backupDir()
	if err := os.MkdirAll(dir, 0755); err != nil {
		fmt.Printf("Failed to create backup directory: %v\n", err)
		return 1
	}

	db, err := openDB(dbPath)
	if err != nil {
		fmt.Printf("Failed to open store: %v\n", err)
		return 1
	}
	defer db.Close()

	backupFile := filepath.Join(dir, fmt.Sprintf("backup_%d.db", time.Now().UnixNano()))
	f, err := os.Create(backupFile)
	if err != nil {
		fmt.Printf("Failed to create backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	if _, err := db.Backup(f, 0); err != nil {
		fmt.Printf("Failed to backup store: %v\n", err)
		return 1
	}

	fmt.Printf("Store backed up successfully to %s\n", backupFile)
	return 0
}

// restore replaces the store with the contents of a backup.
func restore(backupFile string) int {
	if _, err := os.Stat(backupFile); os.IsNotExist(err) {
		fmt.Printf("Backup file does not exist: %s\n", backupFile)
		return 1
	}

	if _, err := os.Stat(dbPath); err == nil {
		fmt.Print("Existing store found. Do you want to replace it? [y/N] ")
		var response string
		fmt.Scanln(&response)
		if response != "y" && response != "Y" {
			fmt.Println("Operation cancelled")
			return 1
		}
		if err := os.RemoveAll(dbPath); err != nil {
			fmt.Printf("Failed to remove existing store: %v\n", err)
			return 1
		}
	}

	if err := os.MkdirAll(dbPath, 0755); err != nil {
		fmt.Printf("Failed to create store directory: %v\n", err)
		return 1
	}

	db, err := openDB(dbPath)
	if err != nil {
		fmt.Printf("Failed to open store: %v\n", err)
		return 1
	}
	defer db.Close()

	f, err := os.Open(backupFile)
	if err != nil {
		fmt.Printf("Failed to open backup file: %v\n", err)
		return 1
	}
	defer f.Close()

	fi, err := f.Stat()
	if err != nil {
		fmt.Printf("Failed to stat backup file: %v\n", err)
		return 1
	}
	if fi.Size() == 0 {
		fmt.Printf("Backup file is empty: %s\n", backupFile)
		return 1
	}

	err = func() (err error) {
		defer func() {
			if r := recover(); r != nil {
				err = fmt.Errorf("panic occurred during restore: %v", r)
			}
		}()
		return db.Load(f, 4)
	}()
	if err != nil {
		fmt.Printf("Failed to restore store: %v\n", err)
		return 1
	}

	fmt.Println("Store restored successfully")
	return 0
}

// clients prints the base URL each browser stored.
func clients() int {
	if _, err := os.Stat(dbPath); os.IsNotExist(err) {
		fmt.Println("No store exists")
		return 1
	}

	db, err := openDB(dbPath)
	if err != nil {
		fmt.Printf("Failed to open store: %v\n", err)
		return 1
	}
	defer db.Close()

	urls, err := repositories.NewBadgerSettingsRepository(db).ListBaseURLs()
	if err != nil {
		fmt.Printf("Failed to read stored base URLs: %v\n", err)
		return 1
	}
	if len(urls) == 0 {
		fmt.Println("No base URLs stored")
		return 0
	}

	ids := make([]string, 0, len(urls))
	for id := range urls {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	for _, id := range ids {
		fmt.Printf("%s  %s\n", id, urls[id])
	}
	return 0
}
