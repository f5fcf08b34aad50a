package questionbank

import "civiclearn-quiz-service/internal/domain"

// Authored content for the Individualbesteuerung campaign. German, like the
// learning platform itself. Each question carries four answers with exactly
// one correct and per-answer feedback.

func flashcardBank() domain.Bank {
	return domain.Bank{
		ID:   FlashcardBankID,
		Kind: domain.BankKindPool,
		Pool: []domain.Question{
			{
				Prompt: "Was bedeutet Individualbesteuerung?",
				Answers: []domain.Answer{
					{Text: "Jede Person wird unabhängig vom Zivilstand einzeln besteuert", Correct: true, Feedback: "Richtig: Jede erwachsene Person füllt eine eigene Steuererklärung aus."},
					{Text: "Nur Alleinstehende müssen Steuern zahlen", Feedback: "Nein, die Steuerpflicht gilt unabhängig vom Zivilstand."},
					{Text: "Ehepaare zahlen doppelt so viel Steuern", Feedback: "Nein, es geht um die getrennte Veranlagung, nicht um eine Verdoppelung."},
					{Text: "Unternehmen werden wie Privatpersonen besteuert", Feedback: "Nein, die Unternehmensbesteuerung ist ein anderes Thema."},
				},
			},
			{
				Prompt: "Wie werden Ehepaare heute in der Schweiz auf Bundesebene besteuert?",
				Answers: []domain.Answer{
					{Text: "Ihre Einkommen werden zusammengezählt und gemeinsam besteuert", Correct: true, Feedback: "Richtig: Heute gilt die gemeinsame Veranlagung."},
					{Text: "Jede Person wird einzeln veranlagt", Feedback: "Nein, das wäre die Individualbesteuerung, um die es bei der Vorlage geht."},
					{Text: "Nur das höhere Einkommen wird besteuert", Feedback: "Nein, beide Einkommen fliessen in die gemeinsame Veranlagung ein."},
					{Text: "Ehepaare sind von der Bundessteuer befreit", Feedback: "Nein, auch Ehepaare zahlen direkte Bundessteuer."},
				},
			},
			{
				Prompt: "Was versteht man unter der sogenannten «Heiratsstrafe»?",
				Answers: []domain.Answer{
					{Text: "Die steuerliche Mehrbelastung gewisser Ehepaare gegenüber unverheirateten Paaren", Correct: true, Feedback: "Richtig: Durch die Progression zahlen manche Ehepaare mehr als Konkubinatspaare."},
					{Text: "Eine Gebühr bei der Heirat", Feedback: "Nein, mit Gebühren der Zivilstandsämter hat der Begriff nichts zu tun."},
					{Text: "Eine Busse bei einer Scheidung", Feedback: "Nein, der Begriff bezieht sich auf die Steuerbelastung während der Ehe."},
					{Text: "Der Verlust des Stimmrechts nach der Heirat", Feedback: "Nein, das Stimmrecht ist vom Zivilstand unabhängig."},
				},
			},
			{
				Prompt: "Warum kann die gemeinsame Veranlagung zu einer höheren Steuerbelastung führen?",
				Answers: []domain.Answer{
					{Text: "Wegen der Steuerprogression rückt das zusammengezählte Einkommen in eine höhere Stufe", Correct: true, Feedback: "Richtig: Höhere Einkommen werden prozentual stärker besteuert."},
					{Text: "Weil Ehepaare einen höheren Steuersatz pro Person haben", Feedback: "Nein, der Tarif pro Person ist nicht höher; die Progression wirkt auf das Gesamteinkommen."},
					{Text: "Weil Abzüge für Ehepaare verboten sind", Feedback: "Nein, Ehepaare können weiterhin Abzüge geltend machen."},
					{Text: "Weil die Kantone Ehepaare doppelt besteuern", Feedback: "Nein, eine Doppelbesteuerung ist unzulässig."},
				},
			},
			{
				Prompt: "Wer müsste bei einer Individualbesteuerung eine Steuererklärung ausfüllen?",
				Answers: []domain.Answer{
					{Text: "Jede steuerpflichtige erwachsene Person einzeln", Correct: true, Feedback: "Richtig: Auch Verheiratete würden je eine eigene Erklärung einreichen."},
					{Text: "Nur die Person mit dem höheren Einkommen", Feedback: "Nein, beide Personen würden separat veranlagt."},
					{Text: "Weiterhin ein Formular pro Haushalt", Feedback: "Nein, die Veranlagung würde pro Person erfolgen."},
					{Text: "Niemand, die Steuer würde automatisch abgezogen", Feedback: "Nein, die Steuererklärung bleibt bestehen."},
				},
			},
			{
				Prompt: "Welches Argument nennen Befürworter der Individualbesteuerung häufig?",
				Answers: []domain.Answer{
					{Text: "Sie beseitigt die Heiratsstrafe und setzt Erwerbsanreize für Zweitverdienende", Correct: true, Feedback: "Richtig: Das sind die beiden zentralen Pro-Argumente."},
					{Text: "Sie senkt die Mehrwertsteuer", Feedback: "Nein, die Mehrwertsteuer ist nicht Teil der Vorlage."},
					{Text: "Sie schafft die Kantonssteuern ab", Feedback: "Nein, die Kantone erheben weiterhin eigene Steuern."},
					{Text: "Sie erhöht die AHV-Renten", Feedback: "Nein, die Altersvorsorge ist ein anderes Dossier."},
				},
			},
			{
				Prompt: "Welches Argument nennen Gegner der Individualbesteuerung häufig?",
				Answers: []domain.Answer{
					{Text: "Mehr Steuererklärungen bedeuten mehr Aufwand für Haushalte und Verwaltung", Correct: true, Feedback: "Richtig: Der administrative Mehraufwand ist ein zentrales Contra-Argument."},
					{Text: "Die Vorlage verbietet die Ehe", Feedback: "Nein, die Vorlage betrifft nur die Steuerveranlagung."},
					{Text: "Alle müssten künftig mehr Steuern zahlen", Feedback: "Nein, die Belastung verändert sich je nach Situation unterschiedlich."},
					{Text: "Die Banken müssten die Steuern einziehen", Feedback: "Nein, die Veranlagung bleibt bei den Steuerbehörden."},
				},
			},
			{
				Prompt: "Was ist ein Zweitverdiener-Anreiz?",
				Answers: []domain.Answer{
					{Text: "Eine tiefere Steuerbelastung macht zusätzliche Erwerbsarbeit der zweitverdienenden Person attraktiver", Correct: true, Feedback: "Richtig: Bei getrennter Veranlagung lohnt sich ein zweites Einkommen steuerlich eher."},
					{Text: "Ein Bonus des Arbeitgebers für Verheiratete", Feedback: "Nein, es geht um steuerliche Wirkung, nicht um Lohnzulagen."},
					{Text: "Eine Subvention für Zweitwohnungen", Feedback: "Nein, Zweitwohnungen sind ein anderes Politikfeld."},
					{Text: "Ein Rabatt auf die Krankenkassenprämie", Feedback: "Nein, Prämien sind nicht Teil des Steuerrechts."},
				},
			},
			{
				Prompt: "Wer entscheidet über die Einführung der Individualbesteuerung auf Bundesebene?",
				Answers: []domain.Answer{
					{Text: "Die Stimmberechtigten an der Urne, nach Parlamentsbeschluss und allfälligem Referendum", Correct: true, Feedback: "Richtig: Bei einem Referendum hat das Stimmvolk das letzte Wort."},
					{Text: "Der Bundesrat allein", Feedback: "Nein, der Bundesrat kann eine solche Änderung nicht allein beschliessen."},
					{Text: "Die kantonalen Steuerämter", Feedback: "Nein, die Ämter vollziehen das Gesetz, sie erlassen es nicht."},
					{Text: "Die Nationalbank", Feedback: "Nein, die Nationalbank ist für die Geldpolitik zuständig."},
				},
			},
			{
				Prompt: "Welche Staatsebenen erheben in der Schweiz Einkommenssteuern?",
				Answers: []domain.Answer{
					{Text: "Bund, Kantone und Gemeinden", Correct: true, Feedback: "Richtig: Alle drei Ebenen besteuern das Einkommen."},
					{Text: "Nur der Bund", Feedback: "Nein, auch Kantone und Gemeinden erheben Einkommenssteuern."},
					{Text: "Nur die Gemeinden", Feedback: "Nein, Gemeinden sind nur eine der drei Ebenen."},
					{Text: "Nur die Kantone", Feedback: "Nein, neben den Kantonen besteuern auch Bund und Gemeinden."},
				},
			},
			{
				Prompt: "Was bedeutet Steuerprogression?",
				Answers: []domain.Answer{
					{Text: "Der Steuersatz steigt mit zunehmendem Einkommen", Correct: true, Feedback: "Richtig: Wer mehr verdient, zahlt prozentual mehr."},
					{Text: "Alle zahlen denselben Frankenbetrag", Feedback: "Nein, das wäre eine Kopfsteuer."},
					{Text: "Die Steuern steigen jedes Jahr automatisch", Feedback: "Nein, die Progression bezieht sich auf die Einkommenshöhe, nicht auf die Zeit."},
					{Text: "Der Steuersatz sinkt mit zunehmendem Einkommen", Feedback: "Nein, das wäre eine regressive Steuer."},
				},
			},
			{
				Prompt: "Wie viele getrennt veranlagte Steuererklärungen ergäbe ein Ehepaar bei Individualbesteuerung?",
				Answers: []domain.Answer{
					{Text: "Zwei, eine pro Person", Correct: true, Feedback: "Richtig: Jede Person reicht eine eigene Erklärung ein."},
					{Text: "Eine gemeinsame wie bisher", Feedback: "Nein, die gemeinsame Erklärung würde entfallen."},
					{Text: "Drei, inklusive einer gemeinsamen", Feedback: "Nein, eine zusätzliche gemeinsame Erklärung gäbe es nicht."},
					{Text: "Keine, Verheiratete wären befreit", Feedback: "Nein, die Steuerpflicht bleibt bestehen."},
				},
			},
		},
	}
}

func ladderBank() domain.Bank {
	return domain.Bank{
		ID:   LadderBankID,
		Kind: domain.BankKindLadder,
		Levels: []domain.Level{
			{Candidates: []domain.Question{
				{
					Prompt: "Worum geht es bei der Vorlage zur Individualbesteuerung?",
					Answers: []domain.Answer{
						{Text: "Um die getrennte Besteuerung jeder erwachsenen Person", Correct: true, Feedback: "Genau, unabhängig vom Zivilstand."},
						{Text: "Um eine neue Autobahnvignette", Feedback: "Nein, die Vorlage betrifft das Steuerrecht."},
						{Text: "Um das Rentenalter", Feedback: "Nein, das Rentenalter ist ein anderes Dossier."},
						{Text: "Um die Armeefinanzierung", Feedback: "Nein, es geht um die Einkommenssteuer."},
					},
				},
				{
					Prompt: "Welcher Zivilstand ist von der heutigen gemeinsamen Veranlagung betroffen?",
					Answers: []domain.Answer{
						{Text: "Verheiratete und eingetragene Partnerschaften", Correct: true, Feedback: "Genau, beide werden heute gemeinsam veranlagt."},
						{Text: "Nur Ledige", Feedback: "Nein, Ledige werden bereits einzeln veranlagt."},
						{Text: "Nur Verwitwete", Feedback: "Nein, Verwitwete werden einzeln veranlagt."},
						{Text: "Nur Geschiedene", Feedback: "Nein, Geschiedene werden einzeln veranlagt."},
					},
				},
			}},
			{Candidates: []domain.Question{
				{
					Prompt: "Welche Steuer des Bundes wird direkt auf dem Einkommen erhoben?",
					Answers: []domain.Answer{
						{Text: "Die direkte Bundessteuer", Correct: true, Feedback: "Genau, sie wird auf dem Einkommen natürlicher Personen erhoben."},
						{Text: "Die Mehrwertsteuer", Feedback: "Nein, die Mehrwertsteuer ist eine Konsumsteuer."},
						{Text: "Die Stempelabgabe", Feedback: "Nein, sie betrifft den Effektenhandel."},
						{Text: "Die Tabaksteuer", Feedback: "Nein, das ist eine Verbrauchssteuer."},
					},
				},
				{
					Prompt: "Wo reichen Steuerpflichtige ihre Steuererklärung ein?",
					Answers: []domain.Answer{
						{Text: "Bei der kantonalen Steuerverwaltung ihres Wohnsitzes", Correct: true, Feedback: "Genau, die Kantone führen die Veranlagung durch."},
						{Text: "Direkt beim Bundesrat", Feedback: "Nein, der Bundesrat ist keine Veranlagungsbehörde."},
						{Text: "Bei der Gemeindeversammlung", Feedback: "Nein, die Gemeindeversammlung behandelt keine Steuererklärungen."},
						{Text: "Bei der Post", Feedback: "Nein, die Post transportiert sie höchstens."},
					},
				},
			}},
			{Candidates: []domain.Question{
				{
					Prompt: "Welche Paare sind von der sogenannten Heiratsstrafe hauptsächlich betroffen?",
					Answers: []domain.Answer{
						{Text: "Ehepaare, bei denen beide ein ähnlich hohes Einkommen erzielen", Correct: true, Feedback: "Genau, dort wirkt die Progression auf das Gesamteinkommen am stärksten."},
						{Text: "Paare ohne jedes Einkommen", Feedback: "Nein, ohne Einkommen gibt es keine Mehrbelastung."},
						{Text: "Konkubinatspaare", Feedback: "Nein, Konkubinatspaare werden bereits einzeln veranlagt."},
						{Text: "Paare mit Wohnsitz im Ausland", Feedback: "Nein, der Wohnsitz ist nicht der entscheidende Faktor."},
					},
				},
				{
					Prompt: "Was wäre bei einer Individualbesteuerung für die Veranlagung massgebend?",
					Answers: []domain.Answer{
						{Text: "Das eigene Einkommen und Vermögen jeder Person", Correct: true, Feedback: "Genau, jede Person versteuert ihre eigenen Faktoren."},
						{Text: "Das Einkommen des gesamten Haushalts", Feedback: "Nein, das entspricht der heutigen gemeinsamen Veranlagung."},
						{Text: "Das Einkommen der Eltern", Feedback: "Nein, Erwachsene werden unabhängig von den Eltern veranlagt."},
						{Text: "Nur das Vermögen, nicht das Einkommen", Feedback: "Nein, das Einkommen bleibt die zentrale Grösse."},
					},
				},
			}},
			{Candidates: []domain.Question{
				{
					Prompt: "Warum erhöht die Individualbesteuerung laut Befürwortern die Erwerbstätigkeit?",
					Answers: []domain.Answer{
						{Text: "Das zweite Einkommen wird nicht mehr zum ersten hinzugerechnet und damit tiefer besteuert", Correct: true, Feedback: "Genau, der Grenzsteuersatz auf dem Zweiteinkommen sinkt."},
						{Text: "Arbeitgeber müssten höhere Löhne zahlen", Feedback: "Nein, Löhne sind nicht Teil der Vorlage."},
						{Text: "Die Arbeitszeit würde gesetzlich verkürzt", Feedback: "Nein, das Arbeitsrecht ändert sich nicht."},
						{Text: "Teilzeitarbeit würde verboten", Feedback: "Nein, ein solches Verbot gibt es nicht."},
					},
				},
				{
					Prompt: "Welchen Mehraufwand befürchten Gegner bei den Steuerbehörden?",
					Answers: []domain.Answer{
						{Text: "Deutlich mehr zu bearbeitende Steuererklärungen", Correct: true, Feedback: "Genau, aus einer gemeinsamen Erklärung würden zwei einzelne."},
						{Text: "Die Einführung einer neuen Währung", Feedback: "Nein, die Währung bleibt der Franken."},
						{Text: "Den Bau neuer Steuerämter in jedem Dorf", Feedback: "Nein, davon ist nicht die Rede."},
						{Text: "Die Übersetzung aller Formulare ins Lateinische", Feedback: "Nein, die Amtssprachen bleiben unverändert."},
					},
				},
			}},
			{Candidates: []domain.Question{
				{
					Prompt: "Wie wirkt sich die Individualbesteuerung auf Einverdiener-Ehepaare tendenziell aus?",
					Answers: []domain.Answer{
						{Text: "Sie können gegenüber heute schlechter gestellt sein, weil Splittingvorteile entfallen", Correct: true, Feedback: "Genau, dieser Verteilungseffekt ist ein zentraler Streitpunkt."},
						{Text: "Sie zahlen in jedem Fall keine Steuern mehr", Feedback: "Nein, eine generelle Befreiung gibt es nicht."},
						{Text: "Sie werden automatisch bessergestellt", Feedback: "Nein, gerade Einverdienerhaushalte können verlieren."},
						{Text: "Für sie ändert sich grundsätzlich nichts", Feedback: "Nein, die Veranlagungsart ändert sich für alle Ehepaare."},
					},
				},
				{
					Prompt: "Was geschieht mit haushaltsbezogenen Abzügen bei einer getrennten Veranlagung?",
					Answers: []domain.Answer{
						{Text: "Sie müssen den einzelnen Personen zugeteilt oder neu geregelt werden", Correct: true, Feedback: "Genau, etwa Kinderabzüge brauchen eine Zuteilungsregel."},
						{Text: "Alle Abzüge werden ersatzlos gestrichen", Feedback: "Nein, Abzüge bleiben Bestandteil des Systems."},
						{Text: "Abzüge gelten nur noch für Alleinstehende", Feedback: "Nein, auch Verheiratete können weiterhin Abzüge geltend machen."},
						{Text: "Jede Person erhält automatisch alle Abzüge doppelt", Feedback: "Nein, eine Verdoppelung ist nicht vorgesehen."},
					},
				},
			}},
			{Candidates: []domain.Question{
				{
					Prompt: "Weshalb betrifft die Reform auch die Kantone, obwohl die Vorlage beim Bund liegt?",
					Answers: []domain.Answer{
						{Text: "Das Steuerharmonisierungsgesetz verpflichtet die Kantone, die Veranlagungsart nachzuvollziehen", Correct: true, Feedback: "Genau, die formelle Harmonisierung bindet die Kantone."},
						{Text: "Die Kantone verlieren ihre Steuerhoheit vollständig", Feedback: "Nein, Tarife und Sätze bleiben kantonal."},
						{Text: "Die Kantone müssen die Bundessteuer abschaffen", Feedback: "Nein, die direkte Bundessteuer bleibt bestehen."},
						{Text: "Sie betrifft die Kantone gar nicht", Feedback: "Nein, die Umsetzung erfolgt gerade in den Kantonen."},
					},
				},
				{
					Prompt: "Welcher Effekt der Progression verschwindet bei getrennter Veranlagung?",
					Answers: []domain.Answer{
						{Text: "Das Hochschleusen beider Einkommen in die Tarifstufe des Gesamteinkommens", Correct: true, Feedback: "Genau, jedes Einkommen wird nach seiner eigenen Stufe besteuert."},
						{Text: "Die Progression als solche", Feedback: "Nein, der Tarif bleibt progressiv, er greift nur pro Person."},
						{Text: "Die Steuerpflicht des Zweiteinkommens", Feedback: "Nein, auch das Zweiteinkommen bleibt steuerbar."},
						{Text: "Der Unterschied zwischen Brutto- und Nettoeinkommen", Feedback: "Nein, dieser Unterschied besteht unabhängig von der Veranlagung."},
					},
				},
			}},
			{Candidates: []domain.Question{
				{
					Prompt: "Welche zwei Ziele verfolgt die Vorlage zur Individualbesteuerung in erster Linie?",
					Answers: []domain.Answer{
						{Text: "Zivilstandsunabhängige Besteuerung und stärkere Erwerbsanreize für Zweitverdienende", Correct: true, Feedback: "Genau, das sind die beiden Kernziele der Reform."},
						{Text: "Höhere Zölle und tiefere Mieten", Feedback: "Nein, weder Zölle noch Mieten sind Teil der Vorlage."},
						{Text: "Mehr Kita-Plätze und ein neues Wahlrecht", Feedback: "Nein, beides regelt die Vorlage nicht."},
						{Text: "Die Abschaffung der Vermögenssteuer", Feedback: "Nein, die Vermögenssteuer der Kantone bleibt."},
					},
				},
				{
					Prompt: "Was bedeutet eine zivilstandsneutrale Besteuerung?",
					Answers: []domain.Answer{
						{Text: "Die Steuerlast hängt nicht davon ab, ob jemand verheiratet ist oder nicht", Correct: true, Feedback: "Genau, gleiches Einkommen führt zur gleichen Steuer, unabhängig vom Zivilstand."},
						{Text: "Verheiratete zahlen immer weniger als Unverheiratete", Feedback: "Nein, das wäre gerade nicht neutral."},
						{Text: "Der Zivilstand wird geheim gehalten", Feedback: "Nein, es geht um die Steuerwirkung, nicht um Datenschutz."},
						{Text: "Nur neutrale Personen zahlen Steuern", Feedback: "Nein, das ergibt steuerrechtlich keinen Sinn."},
					},
				},
			}},
		},
	}
}
