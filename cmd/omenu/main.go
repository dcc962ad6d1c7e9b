package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"

	"omenu/internal/api"
	"omenu/internal/app"
	"omenu/internal/config"
	"omenu/internal/menu"
	"omenu/internal/store"
	"omenu/internal/sync"
)

func main() {
	ctx := context.Background()

	if err := godotenv.Load(); err != nil {
		log.Printf("Warning: no .env file loaded: %v", err)
	}

	cfg, err := config.ClientFromEnv()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	snapshots, err := store.NewSnapshots(filepath.Join(cfg.DataDir, "client"))
	if err != nil {
		log.Fatalf("Failed to initialize local snapshots: %v", err)
	}

	draftStore := store.NewDraftStore(snapshots)
	appStore := store.NewAppStore(snapshots)
	extrasStore := store.NewMenuExtrasStore()
	client := api.NewClient(cfg.APIBaseURL, cfg.AuthSecret)

	coordinator := sync.NewCoordinator(client, draftStore, appStore, extrasStore, sync.Options{})
	coordinator.Start(ctx)
	defer func() {
		coordinator.Flush()
		coordinator.Stop()
	}()

	application := app.NewApp(client, draftStore, appStore, extrasStore)

	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	switch os.Args[1] {
	case "generate":
		runGenerate(ctx, application, draftStore, os.Args[2:])
	case "modify":
		if len(os.Args) < 4 {
			log.Fatalf("Usage: omenu modify <book-id> <instruction>")
		}
		book, err := application.UpdateMenu(ctx, os.Args[2], strings.Join(os.Args[3:], " "))
		if err != nil {
			log.Fatalf("Modification failed: %v", err)
		}
		if book == nil {
			fmt.Println("The menu book no longer exists; result discarded.")
			return
		}
		printBook(*book)
	case "shopping-list":
		if len(os.Args) < 3 {
			log.Fatalf("Usage: omenu shopping-list <book-id>")
		}
		list, err := application.GenerateList(ctx, os.Args[2])
		if err != nil {
			log.Fatalf("Shopping list generation failed: %v", err)
		}
		printShoppingList(*list)
	case "clip":
		if len(os.Args) < 6 {
			log.Fatalf("Usage: omenu clip <book-id> <day> <meal> <url>")
		}
		dish, err := application.Clip(ctx, os.Args[2], menu.Weekday(os.Args[3]), menu.MealType(os.Args[4]), os.Args[5])
		if err != nil {
			log.Fatalf("Clipping failed: %v", err)
		}
		fmt.Printf("Clipped \"%s\" into %s %s.\n", dish.Name, os.Args[3], os.Args[4])
	case "books":
		for _, book := range appStore.MenuBooks() {
			printBook(book)
			fmt.Println()
		}
	case "status":
		health, err := application.Health(ctx)
		if err != nil {
			log.Fatalf("Backend unreachable: %v", err)
		}
		fmt.Printf("Backend %s (version %s) at %s\n", health.Status, health.Version, cfg.APIBaseURL)
	default:
		fmt.Printf("Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func runGenerate(ctx context.Context, application *app.App, draftStore *store.DraftStore, args []string) {
	generateCmd := flag.NewFlagSet("generate", flag.ExitOnError)
	people := generateCmd.Int("people", 0, "Number of people (1-10)")
	budget := generateCmd.Int("budget", 0, "Weekly budget in EUR (min 50)")
	difficulty := generateCmd.String("difficulty", "", "easy, medium or hard")
	keywords := generateCmd.String("keywords", "", "Comma separated style keywords")
	allMeals := generateCmd.Bool("all-meals", false, "Plan every meal of the week")
	generateCmd.Parse(args)

	if *people > 0 {
		draftStore.SetNumPeople(*people)
	}
	if *budget > 0 {
		draftStore.SetBudget(*budget)
	}
	if *difficulty != "" {
		draftStore.SetDifficulty(menu.Difficulty(*difficulty))
	}
	if *keywords != "" {
		for _, k := range strings.Split(*keywords, ",") {
			draftStore.AddKeyword(strings.TrimSpace(k))
		}
	}
	if *allMeals {
		draftStore.SelectAllMeals()
	}
	if draftStore.SelectedMealCount() == 0 {
		log.Fatalf("No meals selected; pass -all-meals or build a cook schedule first")
	}

	fmt.Println("Generating weekly menu...")
	if _, err := application.CreateMenu(ctx); err != nil {
		log.Fatalf("Generation failed: %v", err)
	}
	book, ok := application.ConfirmPendingMenu()
	if !ok {
		log.Fatalf("No pending menu to confirm")
	}
	printBook(*book)
}

func printBook(book menu.MenuBook) {
	fmt.Printf("=== %s (%s, %s) ===\n", book.ID, book.Status, book.CreatedAt)
	for _, day := range menu.Weekdays {
		dm := book.Menus[day]
		for _, meal := range menu.MealTypes {
			for _, dish := range dm.Slot(meal) {
				marker := ""
				if dish.Source == menu.SourceManual {
					marker = " (manual)"
				}
				fmt.Printf("% -10s %-10s %s%s\n", day, meal, dish.Name, marker)
			}
		}
	}
}

func printShoppingList(list menu.ShoppingList) {
	fmt.Printf("=== Shopping list %s ===\n", list.ID)
	for _, item := range list.Items {
		fmt.Printf("- %-30s %.1f %s [%s]\n", item.Name, item.TotalQuantity, item.Unit, item.Category)
	}
}

func printUsage() {
	fmt.Println("Usage: omenu <command> [arguments]")
	fmt.Println("\nCommands:")
	fmt.Println("  generate        Generate a weekly menu from your preferences")
	fmt.Println("  modify          Rework a menu book with an instruction")
	fmt.Println("  shopping-list   Build the shopping list for a menu book")
	fmt.Println("  clip            Import a dish from a recipe URL")
	fmt.Println("  books           List local menu books")
	fmt.Println("  status          Check the backend")
}
