package tui

func (a *App) renderProcessing() string {
	status := a.state.spinner.View() + " Matching the case against BNS sections..."
	return a.screen(
		styleTitle.Render("Predicting Sections"),
		styleSubtitle.Render("> "+truncate(firstLine(a.state.pendingCase), 60)),
		styleBox.Copy().Width(min(60, a.boxWidth())).Render(status),
		styleStatusBar.Render("Waiting for the model...  [Ctrl+C] Quit"),
	)
}
