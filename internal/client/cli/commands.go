package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"studynotes/internal/client/state"
	"studynotes/internal/study"

	ucli "github.com/urfave/cli/v2"
)

func (a *App) registerCmd() *ucli.Command {
	return &ucli.Command{
		Name:  "register",
		Usage: "create an account and log in",
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "name", Required: true},
			&ucli.StringFlag{Name: "email", Required: true},
			&ucli.StringFlag{Name: "password", Usage: "prompted for when omitted"},
		},
		Action: func(c *ucli.Context) error {
			pw, err := a.password(c)
			if err != nil {
				return err
			}
			sess, err := a.api.Register(c.Context, c.String("name"), c.String("email"), pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Registered %s <%s>\n", sess.Name, sess.Email)
			return nil
		},
	}
}

func (a *App) loginCmd() *ucli.Command {
	return &ucli.Command{
		Name:  "login",
		Usage: "log in and store the session token",
		Flags: []ucli.Flag{
			&ucli.StringFlag{Name: "email", Required: true},
			&ucli.StringFlag{Name: "password", Usage: "prompted for when omitted"},
		},
		Action: func(c *ucli.Context) error {
			pw, err := a.password(c)
			if err != nil {
				return err
			}
			sess, err := a.api.Login(c.Context, c.String("email"), pw)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "Logged in as %s <%s>\n", sess.Name, sess.Email)
			return nil
		},
	}
}

func (a *App) logoutCmd() *ucli.Command {
	return &ucli.Command{
		Name:  "logout",
		Usage: "forget the stored session token",
		Action: func(c *ucli.Context) error {
			if err := a.api.Logout(); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "Logged out")
			return nil
		},
	}
}

func (a *App) whoamiCmd() *ucli.Command {
	return &ucli.Command{
		Name:  "whoami",
		Usage: "show the logged in user",
		Action: func(c *ucli.Context) error {
			u, err := a.api.Me(c.Context)
			if err != nil {
				return err
			}
			fmt.Fprintf(a.out, "%s <%s> (id %d)\n", u.Name, u.Email, u.ID)
			return nil
		},
	}
}

func categoryFlags(required bool) []ucli.Flag {
	return []ucli.Flag{
		&ucli.StringFlag{Name: "name", Required: required},
		&ucli.StringFlag{Name: "description"},
		&ucli.StringFlag{Name: "icon"},
		&ucli.StringFlag{Name: "color"},
		&ucli.IntFlag{Name: "topics", Usage: "total topics to cover"},
	}
}

func (a *App) categoriesCmd() *ucli.Command {
	return &ucli.Command{
		Name:    "categories",
		Aliases: []string{"cat"},
		Usage:   "list and edit categories",
		Subcommands: []*ucli.Command{
			{
				Name:  "list",
				Usage: "list categories with progress",
				Action: func(c *ucli.Context) error {
					if err := a.mgr.Load(c.Context); err != nil {
						return err
					}
					a.printCategories(a.mgr.State())
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "create a category",
				Flags: categoryFlags(true),
				Action: func(c *ucli.Context) error {
					cat, err := a.mgr.AddCategory(c.Context, study.CategoryInput{
						Name:        c.String("name"),
						Description: c.String("description"),
						Icon:        c.String("icon"),
						Color:       c.String("color"),
						TotalTopics: c.Int("topics"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Created category %d %q\n", cat.ID, cat.Name)
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "change the given fields of a category",
				ArgsUsage: "<id>",
				Flags:     categoryFlags(false),
				Action: func(c *ucli.Context) error {
					id, err := argID(c, "categories update")
					if err != nil {
						return err
					}
					var p study.CategoryPatch
					p.Name = stringIfSet(c, "name")
					p.Description = stringIfSet(c, "description")
					p.Icon = stringIfSet(c, "icon")
					p.Color = stringIfSet(c, "color")
					if c.IsSet("topics") {
						n := c.Int("topics")
						p.TotalTopics = &n
					}
					cat, err := a.mgr.UpdateCategory(c.Context, id, p)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Updated category %d %q\n", cat.ID, cat.Name)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a category and its notes",
				ArgsUsage: "<id>",
				Action: func(c *ucli.Context) error {
					id, err := argID(c, "categories delete")
					if err != nil {
						return err
					}
					if err := a.mgr.DeleteCategory(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Deleted category %d\n", id)
					return nil
				},
			},
		},
	}
}

func noteFlags(required bool) []ucli.Flag {
	return []ucli.Flag{
		&ucli.StringFlag{Name: "title", Required: required},
		&ucli.StringFlag{Name: "content"},
		&ucli.StringSliceFlag{Name: "tag", Usage: "repeat for several tags"},
		&ucli.Uint64Flag{Name: "category", Required: required},
		&ucli.BoolFlag{Name: "bookmark"},
	}
}

func (a *App) notesCmd() *ucli.Command {
	return &ucli.Command{
		Name:  "notes",
		Usage: "list and edit notes",
		Subcommands: []*ucli.Command{
			{
				Name:  "list",
				Usage: "list notes, most recently updated first",
				Flags: []ucli.Flag{
					&ucli.StringFlag{Name: "query", Aliases: []string{"q"}},
					&ucli.Uint64Flag{Name: "category"},
					&ucli.BoolFlag{Name: "bookmarked"},
				},
				Action: func(c *ucli.Context) error {
					if err := a.mgr.Load(c.Context); err != nil {
						return err
					}
					a.printNotes(a.mgr.Notes(state.Filter{
						Query:          c.String("query"),
						CategoryID:     c.Uint64("category"),
						BookmarkedOnly: c.Bool("bookmarked"),
					}))
					return nil
				},
			},
			{
				Name:  "add",
				Usage: "create a note",
				Flags: noteFlags(true),
				Action: func(c *ucli.Context) error {
					n, err := a.mgr.AddNote(c.Context, study.NoteInput{
						Title:        c.String("title"),
						Content:      c.String("content"),
						Tags:         c.StringSlice("tag"),
						IsBookmarked: c.Bool("bookmark"),
						CategoryID:   c.Uint64("category"),
					})
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Created note %d %q in %s\n", n.ID, n.Title, n.Category.Name)
					return nil
				},
			},
			{
				Name:      "update",
				Usage:     "change the given fields of a note",
				ArgsUsage: "<id>",
				Flags:     noteFlags(false),
				Action: func(c *ucli.Context) error {
					id, err := argID(c, "notes update")
					if err != nil {
						return err
					}
					var p study.NotePatch
					p.Title = stringIfSet(c, "title")
					p.Content = stringIfSet(c, "content")
					if c.IsSet("tag") {
						tags := c.StringSlice("tag")
						p.Tags = &tags
					}
					if c.IsSet("bookmark") {
						b := c.Bool("bookmark")
						p.IsBookmarked = &b
					}
					if c.IsSet("category") {
						cid := c.Uint64("category")
						p.CategoryID = &cid
					}
					n, err := a.mgr.UpdateNote(c.Context, id, p)
					if err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Updated note %d %q\n", n.ID, n.Title)
					return nil
				},
			},
			{
				Name:      "delete",
				Usage:     "delete a note",
				ArgsUsage: "<id>",
				Action: func(c *ucli.Context) error {
					id, err := argID(c, "notes delete")
					if err != nil {
						return err
					}
					if err := a.mgr.DeleteNote(c.Context, id); err != nil {
						return err
					}
					fmt.Fprintf(a.out, "Deleted note %d\n", id)
					return nil
				},
			},
			{
				Name:      "bookmark",
				Usage:     "toggle the bookmark on a note",
				ArgsUsage: "<id>",
				Action: func(c *ucli.Context) error {
					id, err := argID(c, "notes bookmark")
					if err != nil {
						return err
					}
					n, err := a.mgr.ToggleBookmark(c.Context, id)
					if err != nil {
						return err
					}
					if n.IsBookmarked {
						fmt.Fprintf(a.out, "Bookmarked note %d\n", n.ID)
					} else {
						fmt.Fprintf(a.out, "Removed bookmark from note %d\n", n.ID)
					}
					return nil
				},
			},
		},
	}
}

func (a *App) dashboardCmd() *ucli.Command {
	return &ucli.Command{
		Name:  "dashboard",
		Usage: "show study statistics",
		Action: func(c *ucli.Context) error {
			if err := a.mgr.Load(c.Context); err != nil {
				return err
			}
			o := a.mgr.Overview()
			fmt.Fprintf(a.out, "Notes: %d  Bookmarked: %d  Active categories: %d  Average progress: %d%%\n\n",
				o.TotalNotes, o.BookmarkedNotes, o.ActiveCategories, o.AverageProgress)
			a.printCategories(a.mgr.State())
			return nil
		},
	}
}

func (a *App) suggestionsCmd() *ucli.Command {
	return &ucli.Command{
		Name:  "suggestions",
		Usage: "list study suggestions",
		Action: func(c *ucli.Context) error {
			tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tPRIORITY\tTYPE\tTITLE")
			for _, sg := range a.mgr.State().Suggestions {
				fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", sg.ID, sg.Priority, sg.Type, sg.Title)
			}
			return tw.Flush()
		},
		Subcommands: []*ucli.Command{
			{
				Name:      "select",
				Usage:     "open the category a suggestion points at",
				ArgsUsage: "<suggestion-id>",
				Action: func(c *ucli.Context) error {
					if err := a.mgr.Load(c.Context); err != nil {
						return err
					}
					sg, err := a.mgr.SelectSuggestion(c.Args().First())
					if err != nil {
						return err
					}
					st := a.mgr.State()
					fmt.Fprintf(a.out, "%s\n%s\n", sg.Title, sg.Description)
					if cat, ok := st.Category(st.SelectedCategoryID); ok {
						fmt.Fprintln(a.out)
						a.printNotes(state.FilterNotes(st.Notes, state.Filter{CategoryID: cat.ID}))
					}
					return nil
				},
			},
		},
	}
}

func (a *App) printCategories(st state.State) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tNOTES\tTOPICS\tPROGRESS")
	for _, c := range st.Categories {
		notes := len(state.FilterNotes(st.Notes, state.Filter{CategoryID: c.ID}))
		fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d%%\n", c.ID, c.Name, notes, c.TotalTopics, state.CategoryProgress(c, st.Notes))
	}
	_ = tw.Flush()
}

func (a *App) printNotes(notes []study.Note) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\t*\tTITLE\tCATEGORY\tTAGS\tUPDATED")
	for _, n := range notes {
		mark := ""
		if n.IsBookmarked {
			mark = "*"
		}
		fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%s\n",
			n.ID, mark, n.Title, n.Category.Name, strings.Join(n.Tags, ","), n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	_ = tw.Flush()
}

func stringIfSet(c *ucli.Context, name string) *string {
	if !c.IsSet(name) {
		return nil
	}
	v := c.String(name)
	return &v
}
