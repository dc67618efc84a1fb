// internal/chat/intent/responses.go
package intent

// Response templates are static site copy. Only the two placeholders are
// substituted; nothing derived from user input ever reaches these strings.

const responseScheduleMeeting = `🚀 Excelente decisão! Vamos transformar sua clínica juntos!<br><br>
👉 <a href="{{schedulingURL}}" target="_blank" class="bg-primary text-white px-3 py-1 rounded-full text-xs font-bold hover:bg-violet-600 inline-block mt-2">AGENDAR REUNIÃO GRATUITA</a><br><br>
É rápido, só 2 minutinhos! Um especialista entrará em contato em até 24h. 💜`

const responseSupportContact = `📧 Sem problemas! Nossa equipe está pronta para te ajudar:<br><br>
✉️ <a href="mailto:{{supportEmail}}" class="text-primary underline font-bold">{{supportEmail}}</a><br><br>
Ou se preferir, posso te ajudar agora mesmo! Me conta: qual é sua principal dificuldade na clínica hoje?`

const responsePriceObjection = `💡 Entendo sua preocupação com investimento! Mas deixa eu te mostrar algo importante:<br><br>
Nossa <a href="#calculadora" class="text-primary underline">Calculadora de ROI</a> mostra que clínicas perdem em média <strong>15-25% do faturamento</strong> com desperdícios ocultos.<br><br>
📊 Exemplo: Uma clínica com R$200k/mês deixa <strong>R$360.000/ano na mesa</strong>!<br><br>
O investimento na GLX se paga em <strong>3-4 meses</strong>. Quer ver os números da SUA clínica?<br><br>
👉 <a href="{{schedulingURL}}" target="_blank" class="text-primary underline font-bold">Agendar análise gratuita</a>`

const responseTimeObjection = `⏰ Entendo! Gestores de clínica são muito ocupados mesmo. Por isso nossa metodologia é <strong>prática e focada</strong>:<br><br>
✅ Diagnóstico inicial: 30 minutos<br>
✅ Primeiros resultados: 4 semanas<br>
✅ ROI positivo: 3-4 meses<br><br>
Que tal uma conversa rápida de 15 minutos para entender se faz sentido para você?<br><br>
👉 <a href="{{schedulingURL}}" target="_blank" class="text-primary underline font-bold">Agendar conversa rápida</a>`

const responseTrustObjection = `🏆 Ótima pergunta! Nossos resultados falam por si:<br><br>
🎯 <strong>+87%</strong> de eficiência operacional<br>
💰 <strong>-30%</strong> de custos desnecessários<br>
😊 <strong>+95%</strong> satisfação do paciente<br>
⏱️ <strong>50%</strong> menos tempo de espera<br><br>
A metodologia GLX é baseada em <strong>Lean Six Sigma</strong>, usada pelas maiores empresas do mundo!<br><br>
Quer ver como isso se aplica na sua clínica?<br>
👉 <a href="{{schedulingURL}}" target="_blank" class="text-primary underline font-bold">Agendar demonstração</a>`

const responseMethodology = `🎯 A metodologia <strong>GLX 4.0</strong> combina o melhor de:<br><br>
📐 <strong>Lean Six Sigma</strong> - eliminar desperdícios<br>
🖥️ <strong>Tecnologia</strong> - automação inteligente<br>
💼 <strong>UX Estratégico</strong> - jornada do paciente<br>
📊 <strong>BI</strong> - dados para decisões<br><br>
Resultado? Sua clínica operando com <strong>máxima eficiência</strong> e <strong>margens maiores</strong>.<br><br>
Quer entender como isso funciona na prática?<br>
👉 <a href="{{schedulingURL}}" target="_blank" class="text-primary underline font-bold">Agendar demonstração</a>`

const responseServices = `🏥 A GLX Partners transforma clínicas com:<br><br>
🎨 <strong>Posicionamento de Marca</strong> - diferenciação no mercado<br>
🛤️ <strong>Jornada do Paciente</strong> - experiência impecável<br>
💻 <strong>Software de Gestão</strong> - otimização operacional<br>
💰 <strong>Arquitetura de Receita</strong> - novas fontes de lucro<br>
📊 <strong>Dashboards de BI</strong> - visão 360° do negócio<br><br>
Qual dessas áreas mais precisa de atenção na sua clínica?<br><br>
Conte-me mais, ou <a href="{{schedulingURL}}" target="_blank" class="text-primary underline font-bold">agende uma análise gratuita</a>!`

const responseCalculator = `📊 A <strong>Calculadora de Impacto</strong> mostra exatamente quanto dinheiro está "escapando" da sua clínica!<br><br>
Experimente agora: <a href="#calculadora" class="text-primary underline">Ver Calculadora</a><br><br>
<strong>Mas os números reais são ainda melhores!</strong> Na análise personalizada, encontramos oportunidades que a calculadora genérica não mostra.<br><br>
👉 <a href="{{schedulingURL}}" target="_blank" class="text-primary underline font-bold">Agendar análise personalizada</a>`

const responseGreeting = `Olá! 😊 Sou a <strong>Luna</strong>, assistente virtual da GLX Partners!<br><br>
Estou aqui para te ajudar a descobrir como <strong>aumentar a margem de lucro</strong> da sua clínica.<br><br>
Me conta: qual é o maior desafio que você enfrenta hoje na gestão?`

const responseThanks = `Por nada! 💜<br><br>
Lembre-se: cada dia sem otimização é dinheiro deixado na mesa! 💸<br><br>
Quando quiser transformar sua clínica, estou aqui:<br>
👉 <a href="{{schedulingURL}}" target="_blank" class="text-primary underline font-bold">Agendar reunião</a>`

const responseRejection = `Sem problemas! 😊 Posso te ajudar de outra forma?<br><br>
Se tiver qualquer dúvida técnica, nosso time está disponível:<br>
✉️ <a href="mailto:{{supportEmail}}" class="text-primary underline">{{supportEmail}}</a><br><br>
Ou explore nossa <a href="#calculadora" class="text-primary underline">Calculadora de Impacto</a> para ver o potencial da sua clínica!`

const responseDefault = `Interessante! 🤔<br><br>
Para te dar a resposta mais precisa, seria ideal conversar com um especialista da GLX sobre o cenário da sua clínica.<br><br>
A reunião é <strong>gratuita, sem compromisso</strong>, e você já sai com insights valiosos!<br><br>
👉 <a href="{{schedulingURL}}" target="_blank" class="bg-primary text-white px-3 py-1 rounded-full text-xs font-bold hover:bg-violet-600 inline-block">AGENDAR AGORA</a><br><br>
Ou me conta mais sobre sua dúvida que tento te ajudar! 💜`

// defaultRuleTemplates is the site's rule table in evaluation order.
// Scheduling comes first on purpose: it is the conversion goal.
func defaultRuleTemplates() []Rule {
	return []Rule{
		{
			Intent:   IntentScheduleMeeting,
			Triggers: []string{"agendar", "reunião", "marcar", "quero", "sim", "vamos", "interesse", "começar", "iniciar"},
			Response: responseScheduleMeeting,
		},
		{
			Intent:   IntentSupportContact,
			Triggers: []string{"dúvida", "duvida", "ajuda", "e-mail", "email", "suporte", "falar com", "humano", "atendente"},
			Response: responseSupportContact,
		},
		{
			Intent:   IntentPriceObjection,
			Triggers: []string{"preço", "caro", "quanto custa", "valor", "investimento", "orçamento", "custo", "pagar"},
			Response: responsePriceObjection,
		},
		{
			Intent:   IntentTimeObjection,
			Triggers: []string{"tempo", "ocupado", "depois", "agora não", "mais tarde", "pensar"},
			Response: responseTimeObjection,
		},
		{
			Intent:   IntentTrustObjection,
			Triggers: []string{"funciona", "resultado", "prova", "garantia", "confia", "certeza"},
			Response: responseTrustObjection,
		},
		{
			Intent:   IntentMethodology,
			Triggers: []string{"lean", "six sigma", "metodologia", "método", "como funciona"},
			Response: responseMethodology,
		},
		{
			Intent:   IntentServices,
			Triggers: []string{"serviço", "oferece", "faz", "entrega"},
			Response: responseServices,
		},
		{
			Intent:   IntentCalculator,
			Triggers: []string{"calculadora", "roi", "retorno", "impacto"},
			Response: responseCalculator,
		},
		{
			Intent:   IntentGreeting,
			Triggers: []string{"olá", "oi", "hey", "boa", "ola"},
			Response: responseGreeting,
		},
		{
			Intent:   IntentThanks,
			Triggers: []string{"obrigad"},
			Response: responseThanks,
		},
		{
			Intent:   IntentRejection,
			Triggers: []string{"não", "nao", "nunca", "negativo"},
			Response: responseRejection,
		},
	}
}
